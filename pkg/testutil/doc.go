// Package testutil provides utilities for testing semtparser components.
//
// Key components:
//   - LogLine / Log: build operation log lines and files inline
//   - MemoryFS: a memory filesystem pre-populated with files
//
// Usage guidelines:
//   - Tests run on the memory filesystem unless they exercise the OS layer
//   - All test data should be defined inline, not in external files
package testutil
