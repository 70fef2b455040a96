// Package main is the entry point for the docnav shell.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/docnav/internal/app"
	"github.com/dshills/docnav/internal/editor"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, files := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	for _, f := range files {
		application.Host().AddFile(editor.FileID(f))
	}

	sh := &shell{app: application, out: os.Stdout}
	if err := sh.loop(os.Stdin); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, []string) {
	var opts app.Options
	var watch string
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.StatePath, "state", "", "Path to the recent-files state file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&watch, "watch", "", "Directory to watch for file deletions")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Docnav - document navigation history shell\n\n")
		fmt.Fprintf(os.Stderr, "Usage: docnav [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  docnav a.go b.go            Start with two registered files\n")
		fmt.Fprintf(os.Stderr, "  docnav -watch ./src a.go    Prune history when files are deleted\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if showVersion {
		fmt.Printf("Docnav %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		opts.LogLevel = strings.ToLower(opts.LogLevel)
		switch opts.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}
	if watch != "" {
		opts.WatchPaths = []string{watch}
	}

	return opts, flag.Args()
}

// shell is a line-oriented front end over the navigation engine.
type shell struct {
	app *app.App
	out io.Writer
}

func (s *shell) loop(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "docnav> ")
		if !sc.Scan() {
			return sc.Err()
		}
		if err := s.exec(strings.Fields(sc.Text())); err != nil {
			if errors.Is(err, app.ErrQuit) {
				return err
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *shell) exec(args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "quit", "exit", "q":
		return app.ErrQuit

	case "help":
		s.help()
		return nil

	case "add":
		if len(args) != 1 {
			return errors.New("usage: add <file>")
		}
		s.app.Host().AddFile(editor.FileID(args[0]))
		return nil

	case "rm":
		if len(args) != 1 {
			return errors.New("usage: rm <file>")
		}
		s.app.Host().RemoveFile(editor.FileID(args[0]))
		return nil

	case "open":
		if len(args) != 1 {
			return errors.New("usage: open <file>")
		}
		return s.app.Do("open", "", func() error {
			return s.app.Host().Open(editor.FileID(args[0]))
		})

	case "goto":
		line, col, err := lineCol(args)
		if err != nil {
			return err
		}
		return s.app.Do("goto", "", func() error {
			return s.app.Host().MoveCaret(line, col)
		})

	case "edit":
		line, col, err := lineCol(args)
		if err != nil {
			return err
		}
		// Consecutive edits share a group so coalesced typing merges
		// into a single history entry.
		return s.app.Do("edit", "typing", func() error {
			return s.app.Host().Edit(line, col)
		})

	case "back":
		if !s.app.Tracker().IsBackAvailable() {
			fmt.Fprintln(s.out, "nothing to go back to")
			return nil
		}
		if err := s.app.Tracker().Back(); err != nil {
			return err
		}
		return s.where()

	case "forward":
		if !s.app.Tracker().IsForwardAvailable() {
			fmt.Fprintln(s.out, "nothing to go forward to")
			return nil
		}
		if err := s.app.Tracker().Forward(); err != nil {
			return err
		}
		return s.where()

	case "prevchange":
		if !s.app.Tracker().IsNavigatePreviousChangeAvailable() {
			fmt.Fprintln(s.out, "no previous change")
			return nil
		}
		if err := s.app.Tracker().NavigatePreviousChange(); err != nil {
			return err
		}
		return s.where()

	case "changes":
		files := s.app.Tracker().ChangedFiles()
		if len(files) == 0 {
			fmt.Fprintln(s.out, "no changed files")
			return nil
		}
		for _, f := range files {
			fmt.Fprintln(s.out, f)
		}
		return nil

	case "places":
		s.places()
		return nil

	case "where":
		return s.where()

	case "clear":
		s.app.ClearHistory()
		return nil

	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (s *shell) where() error {
	ed, ok := s.app.Host().SelectedEditor()
	if !ok {
		fmt.Fprintln(s.out, "no file selected")
		return nil
	}
	state, _ := ed.NavigationState().(editor.LineState)
	fmt.Fprintf(s.out, "%s:%d:%d\n", ed.File(), state.Line, state.Column)
	return nil
}

func (s *shell) places() {
	tr := s.app.Tracker()
	fmt.Fprintln(s.out, "back:")
	for _, p := range tr.BackPlaces() {
		fmt.Fprintf(s.out, "  %s\n", p)
	}
	fmt.Fprintln(s.out, "forward:")
	for _, p := range tr.ForwardPlaces() {
		fmt.Fprintf(s.out, "  %s\n", p)
	}
	fmt.Fprintln(s.out, "changes:")
	for _, p := range tr.ChangePlaces() {
		fmt.Fprintf(s.out, "  %s\n", p)
	}
}

func (s *shell) help() {
	fmt.Fprint(s.out, `Commands:
  add <file>            Register a file with the host
  rm <file>             Remove a file; prunes it from history
  open <file>           Select an editor on the file
  goto <line> [col]     Move the caret
  edit <line> [col]     Edit at a position (moves the caret too)
  back                  Navigate to the previous place
  forward               Navigate to the next place
  prevchange            Navigate to the previous change place
  changes               List recently changed files
  places                Dump the history stacks
  where                 Show the current file and caret
  clear                 Reset navigation history
  quit                  Exit
`)
}

func lineCol(args []string) (line, col int, err error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, 0, errors.New("expected <line> [col]")
	}
	line, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad line %q", args[0])
	}
	if len(args) == 2 {
		col, err = strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("bad column %q", args[1])
		}
	}
	return line, col, nil
}
