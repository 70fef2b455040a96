// Package editor defines the collaborator interfaces the navigation
// engine depends on, and an in-memory host implementation.
//
// The engine never talks to a concrete editor. It consumes:
//
//   - ContextProvider: the current file, selected editor, and window
//   - Navigator: moves the editor to a captured place
//   - FileRegistry: file validity for pruning stale history entries
//   - NavState: the host's opaque navigation state with equality and
//     merge predicates
//
// All collaborators are injected at construction; there is no global
// registration. The Memory host implements the full Host interface and
// backs the test suite and the demo CLI.
package editor
