package testutil

import (
	"fmt"
	"strings"
)

// TS returns an RFC3339 timestamp n minutes after 2024-05-01T10:00:00Z.
func TS(n int) string {
	return fmt.Sprintf("2024-05-01T%02d:%02d:00Z", 10+n/60, n%60)
}

// LogLine builds a log line: "[ts] -| OpType:op -| k:v ...". An empty ts
// leaves the timestamp field out.
func LogLine(ts, op string, kv ...string) string {
	parts := []string{}
	if ts != "" {
		parts = append(parts, "["+ts+"]")
	}
	parts = append(parts, "OpType:"+op)
	for i := 0; i+1 < len(kv); i += 2 {
		parts = append(parts, kv[i]+":"+kv[i+1])
	}
	return strings.Join(parts, " -| ")
}

// Log joins lines into file content with a trailing newline.
func Log(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
