// Package script loads user Lua merge rules.
//
// The tracker's place comparison is an injected strategy. The built-in
// rule defers to the host's navigation state predicates; a user script
// can widen it, for example merging any two places inside the same
// file:
//
//	function can_merge(a, b)
//	    return a.file == b.file
//	end
//
// Scripts run in a restricted Lua state: base, table, string, and math
// libraries only, with the code-loading globals removed.
package script
