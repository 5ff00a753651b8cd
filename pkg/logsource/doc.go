// Package logsource opens operation logs.
//
// A location is a local path or an s3://bucket/key URI. Gzip and zstd
// compressed logs are recognized by extension or by their magic bytes and
// decompressed transparently. The whole log is read into memory as lines,
// oldest first.
package logsource
