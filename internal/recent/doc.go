// Package recent tracks the bounded ordered list of recently changed
// files and persists it across sessions.
//
// The navigation tracker registers a file each time an editing command
// changes it; re-registering moves the file to the most-recent end and
// the oldest entries are evicted past the configured limit. The list is
// saved as yaml with an atomic temp-file-and-rename write so a crash
// never leaves a truncated state file.
package recent
