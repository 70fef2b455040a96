package events

import "github.com/dshills/docnav/internal/event/topic"

// Navigation event topics.
const (
	// TopicCommandStarted is published when an editing command begins.
	TopicCommandStarted topic.Topic = "command.started"

	// TopicCommandFinished is published when an editing command ends.
	TopicCommandFinished topic.Topic = "command.finished"

	// TopicDocumentChanged is published when a document is edited.
	TopicDocumentChanged topic.Topic = "document.changed"

	// TopicCaretMoved is published when the caret position changes.
	TopicCaretMoved topic.Topic = "caret.moved"

	// TopicSelectionChanged is published when the selected editor changes.
	TopicSelectionChanged topic.Topic = "editor.selection.changed"

	// TopicFileRemoved is published when a file is deleted or renamed away.
	TopicFileRemoved topic.Topic = "file.removed"

	// TopicHistoryNavigated is published after a history jump completes.
	TopicHistoryNavigated topic.Topic = "history.navigated"

	// TopicHistoryCleared is published when navigation history is reset.
	TopicHistoryCleared topic.Topic = "history.cleared"
)

// CommandStarted is published when an editing command begins.
type CommandStarted struct {
	// CommandID uniquely identifies this command instance.
	CommandID string

	// Name is the host-assigned command name, may be empty.
	Name string
}

// CommandFinished is published when an editing command ends.
type CommandFinished struct {
	// CommandID uniquely identifies this command instance.
	CommandID string

	// Name is the host-assigned command name, may be empty.
	Name string

	// GroupID groups commands that merge into one history entry, such as
	// coalesced typing. Empty means the command belongs to no group.
	GroupID string
}

// DocumentChanged is published when a document is edited.
type DocumentChanged struct {
	// File is the identifier of the edited file. Empty for documents not
	// backed by a file; those do not participate in history.
	File string
}

// CaretMoved is published when the caret position changes.
type CaretMoved struct {
	// File is the identifier of the file whose caret moved.
	File string

	// OldLine and NewLine are zero-based line numbers before and after
	// the move. Moves within a single line do not count as navigation.
	OldLine int
	NewLine int

	// OldColumn and NewColumn are zero-based columns before and after.
	OldColumn int
	NewColumn int
}

// SelectionChanged is published when the selected editor changes.
type SelectionChanged struct {
	// File is the newly selected file, empty if no editor is selected.
	File string
}

// FileRemoved is published when a file is deleted or renamed away.
type FileRemoved struct {
	// Path is the identifier of the removed file.
	Path string
}

// NavigationDirection identifies the kind of history jump.
type NavigationDirection string

// Navigation directions.
const (
	// DirectionBack is a jump to an older place.
	DirectionBack NavigationDirection = "back"

	// DirectionForward is a jump to a newer place.
	DirectionForward NavigationDirection = "forward"

	// DirectionChange is a jump to a previous change place.
	DirectionChange NavigationDirection = "change"
)

// HistoryNavigated is published after a history jump completes.
type HistoryNavigated struct {
	// File is the file the editor navigated to.
	File string

	// Direction is the kind of jump that was performed.
	Direction NavigationDirection
}

// HistoryCleared is published when navigation history is reset.
type HistoryCleared struct{}
