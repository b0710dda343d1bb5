// Package interpreter walks sand statement trees against a flat scope. Every
// call works on a copy of the caller's scope, primitive values answer member
// lookups from the global method tables seeded by package intrinsics, and
// include statements splice another file's bindings into the running scope.
package interpreter
