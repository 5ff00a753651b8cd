// Package oplog turns a SemT operation log into the ordered list of
// operations a replay artifact needs.
//
// The pipeline runs in one direction:
//
//	lines -> ExtractWindow -> ParseLines -> SortChronological -> Resolve
//
// ExtractWindow keeps the last table-load cycle (GET_TABLE through the
// closing SAVE_TABLE). ParseLine is tolerant: unknown fields are dropped,
// bad timestamps keep their raw text and sort by the UnknownTimestamps
// policy, malformed AdditionalData reads as an empty object. Resolve is a
// fold of Step over the sorted records; each step only looks at records
// already accepted, so the result depends on input order and is
// deterministic.
//
// Normalize wires the stages together and derives the dataset id, deleted
// columns and a JCS digest of the final list.
package oplog
