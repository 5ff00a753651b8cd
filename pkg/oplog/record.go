package oplog

import (
	"encoding/json"
	"strings"
)

// OpType identifies the kind of table operation a log line describes.
type OpType string

const (
	OpGetTable       OpType = "GET_TABLE"
	OpSaveTable      OpType = "SAVE_TABLE"
	OpReconciliation OpType = "RECONCILIATION"
	OpExtension      OpType = "EXTENSION"
	OpPropagateType  OpType = "PROPAGATE_TYPE"
	OpModification   OpType = "MODIFICATION"
	OpExport         OpType = "EXPORT"

	// OpUnknown marks a record whose OpType field is missing or not recognized.
	// The raw value is kept in Record.RawType.
	OpUnknown OpType = "UNKNOWN"
)

var knownOpTypes = map[string]OpType{
	string(OpGetTable):       OpGetTable,
	string(OpSaveTable):      OpSaveTable,
	string(OpReconciliation): OpReconciliation,
	string(OpExtension):      OpExtension,
	string(OpPropagateType):  OpPropagateType,
	string(OpModification):   OpModification,
	string(OpExport):         OpExport,
}

// ParseOpType maps the raw OpType value to a known OpType, or OpUnknown.
func ParseOpType(raw string) OpType {
	if t, ok := knownOpTypes[strings.TrimSpace(raw)]; ok {
		return t
	}
	return OpUnknown
}

// IsBoundary reports whether the type opens or closes a table-load cycle.
func (t OpType) IsBoundary() bool {
	return t == OpGetTable || t == OpSaveTable
}

// Field keys as they appear in log lines.
const (
	KeyOpType         = "OpType"
	KeyColumnName     = "ColumnName"
	KeyReconciler     = "Reconciler"
	KeyExtender       = "Extender"
	KeyModifier       = "Modifier"
	KeyAdditionalData = "AdditionalData"
	KeyDatasetID      = "DatasetId"
	KeyDeletedCols    = "DeletedCols"
	KeyTimestamp      = "timestamp"
)

// Field is a single recognized key/value pair of a log line.
type Field struct {
	Key   string
	Value string
}

// Record is one parsed log line. The commonly used fields are lifted into
// typed members; every recognized pair is also kept, in line order, for
// metadata dumps. Missing fields read as the empty string.
type Record struct {
	Type           OpType
	RawType        string
	Column         string
	Timestamp      Timestamp
	AdditionalData string
	DatasetID      string
	DeletedCols    string

	// Tool is the Reconciler, Extender or Modifier id, depending on Type.
	Tool string

	fields []Field
}

// NewRecord builds a record from ordered fields. A later duplicate key
// overrides the earlier value but keeps its position.
func NewRecord(fields []Field, ts Timestamp) Record {
	r := Record{Timestamp: ts}
	for _, f := range fields {
		r.set(f.Key, f.Value)
	}
	if ts.Raw != "" || ts.Valid {
		r.set(KeyTimestamp, ts.String())
	}

	r.RawType = r.Field(KeyOpType)
	r.Type = ParseOpType(r.RawType)
	r.Column = r.Field(KeyColumnName)
	r.AdditionalData = r.Field(KeyAdditionalData)
	r.DatasetID = r.Field(KeyDatasetID)
	r.DeletedCols = r.Field(KeyDeletedCols)

	switch r.Type {
	case OpReconciliation:
		r.Tool = r.Field(KeyReconciler)
	case OpExtension:
		r.Tool = r.Field(KeyExtender)
	case OpModification:
		r.Tool = r.Field(KeyModifier)
	}
	return r
}

func (r *Record) set(key, value string) {
	for i := range r.fields {
		if r.fields[i].Key == key {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Field returns the value for key, or "" when the line did not carry it.
func (r Record) Field(key string) string {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Has reports whether the line carried key.
func (r Record) Has(key string) bool {
	for _, f := range r.fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

// Fields returns a copy of the recognized fields in line order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Map returns the recognized fields as a map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		m[f.Key] = f.Value
	}
	return m
}

// MarshalJSON encodes the record as a flat object of its recognized fields.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// MarshalYAML encodes the record as a flat mapping of its recognized fields.
func (r Record) MarshalYAML() (interface{}, error) {
	return r.Map(), nil
}

// TypeName returns the OpType for display, falling back to the raw value
// for unknown types.
func (r Record) TypeName() string {
	if r.Type == OpUnknown && r.RawType != "" {
		return r.RawType
	}
	return string(r.Type)
}

// columnScoped reports whether the record acts on a single column and so
// takes part in per-column dominance rules.
func (r Record) columnScoped() bool {
	switch r.Type {
	case OpReconciliation, OpExtension, OpPropagateType, OpModification:
		return true
	case OpUnknown:
		return r.Has(KeyColumnName)
	}
	return false
}

// ParseDeletedColumns splits a DeletedCols value ("a|-|b|-|c"). The
// NO_DELETED sentinel and the empty string both mean no columns.
func ParseDeletedColumns(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "NO_DELETED" {
		return []string{}
	}

	cols := []string{}
	for _, col := range strings.Split(trimmed, "|-|") {
		col = strings.TrimSpace(col)
		if col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}
