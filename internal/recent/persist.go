package recent

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// state is the on-disk representation of a List.
type state struct {
	ChangedPaths []string `yaml:"changed_paths"`
}

// Save writes the list to path as yaml, atomically via a temp file and
// rename.
func (l *List) Save(path string) error {
	data, err := yaml.Marshal(state{ChangedPaths: l.Paths()})
	if err != nil {
		return fmt.Errorf("recent: marshal state: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("recent: create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".recent-*.yaml")
	if err != nil {
		return fmt.Errorf("recent: create temp state: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("recent: write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("recent: close state: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("recent: replace state: %w", err)
	}
	return nil
}

// Load replaces the list contents from the yaml file at path. A missing
// file leaves the list empty and is not an error.
func (l *List) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("recent: read state: %w", err)
	}

	var st state
	if err := yaml.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("recent: parse state: %w", err)
	}

	l.setPaths(st.ChangedPaths)
	return nil
}
