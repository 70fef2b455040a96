package topic

import "testing"

func TestSegments(t *testing.T) {
	tests := []struct {
		topic Topic
		want  int
	}{
		{"", 0},
		{"command", 1},
		{"command.finished", 2},
		{"editor.selection.changed", 3},
	}

	for _, tt := range tests {
		if got := len(tt.topic.Segments()); got != tt.want {
			t.Errorf("Segments(%q) = %d segments, want %d", tt.topic, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"command.finished", true},
		{"command", true},
		{"", false},
		{".command", false},
		{"command.", false},
		{"command..finished", false},
	}

	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"exact", "command.finished", "command.finished", true},
		{"exact mismatch", "command.finished", "command.started", false},
		{"single wildcard", "command.finished", "command.*", true},
		{"single wildcard wrong depth", "editor.selection.changed", "editor.*", false},
		{"multi wildcard", "editor.selection.changed", "editor.**", true},
		{"multi wildcard zero segments", "command", "command.**", true},
		{"multi wildcard everything", "file.removed", "**", true},
		{"wildcard middle", "editor.selection.changed", "editor.*.changed", true},
		{"prefix not match", "command.finished.extra", "command.finished", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.topic.Matches(tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestIsPattern(t *testing.T) {
	if Topic("command.finished").IsPattern() {
		t.Error("plain topic should not be a pattern")
	}
	if !Topic("command.*").IsPattern() {
		t.Error("wildcard topic should be a pattern")
	}
}
