// Package topic provides hierarchical topic types and pattern matching
// for the event bus.
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	command.finished
//	document.changed
//	file.removed
//
// Two wildcard patterns are supported when subscribing:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	command.*        matches command.started, command.finished
//	**               matches everything
//	*.changed        matches document.changed, selection.changed
package topic
