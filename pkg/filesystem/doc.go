// Package filesystem provides the filesystem used by semtparser commands.
//
// Commands take an FS so tests can run them against an in-memory tree.
package filesystem
