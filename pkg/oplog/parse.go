package oplog

import (
	"strings"

	"github.com/arthur-debert/semtparser/pkg/logging"
)

// FieldDelimiter separates the fields of a log line.
const FieldDelimiter = " -| "

// ParseLine turns one raw log line into a Record.
//
// Each field is "key:value". The AdditionalData value is a JSON blob and
// keeps everything after its first colon. A bracketed field with at least
// three colon-separated parts is the timestamp. Fields of any other shape
// are dropped.
func ParseLine(line string) Record {
	log := logging.GetLogger("oplog.parse")

	var fields []Field
	var ts Timestamp
	for _, part := range strings.Split(line, FieldDelimiter) {
		pieces := strings.Split(part, ":")
		key := strings.TrimSpace(pieces[0])
		trimmed := strings.TrimSpace(part)

		switch {
		case key == KeyAdditionalData:
			value := ""
			if idx := strings.Index(part, ":"); idx >= 0 {
				value = strings.TrimSpace(part[idx+1:])
			}
			fields = append(fields, Field{Key: key, Value: value})
		case len(pieces) == 2:
			if key == "" {
				log.Debug().Str("field", part).Msg("Dropping field with empty key")
				continue
			}
			fields = append(fields, Field{Key: key, Value: strings.TrimSpace(pieces[1])})
		case len(pieces) >= 3 && strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			ts = ParseTimestamp(strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]"))
		default:
			if trimmed != "" {
				log.Debug().Str("field", part).Msg("Dropping unrecognized field")
			}
		}
	}

	return NewRecord(fields, ts)
}

// ParseLines parses every line, in order.
func ParseLines(lines []string) []Record {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		records = append(records, ParseLine(line))
	}
	return records
}

// lineOpType reads only the OpType field of a line. Boundary detection
// uses it so a payload that merely mentions GET_TABLE is not a boundary.
func lineOpType(line string) OpType {
	for _, part := range strings.Split(line, FieldDelimiter) {
		key, value, ok := strings.Cut(part, ":")
		if ok && strings.TrimSpace(key) == KeyOpType {
			return ParseOpType(value)
		}
	}
	return OpUnknown
}
