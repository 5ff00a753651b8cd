package emit

import (
	"sort"
	"strings"

	"github.com/arthur-debert/semtparser/pkg/oplog"
)

// Kind classifies a step for rendering.
type Kind string

const (
	KindReconcile Kind = "reconcile"
	KindExtend    Kind = "extend"
	KindPropagate Kind = "propagate"
	KindModify    Kind = "modify"
	KindExport    Kind = "export"
	KindBoundary  Kind = "boundary"
	KindUnknown   Kind = "unknown"
)

// Export formats the generated code can produce.
var supportedExports = map[string]bool{"csv": true, "json": true, "w3c": true}

// ExportStep describes one table export.
type ExportStep struct {
	Format     string
	OutputFile string
	Supported  bool
}

// NewExportStep normalizes an export; unsupported or missing formats are
// kept but flagged.
func NewExportStep(format, outputFile string) ExportStep {
	format = strings.ToLower(strings.TrimSpace(format))
	if outputFile == "" {
		outputFile = oplog.DefaultExportFile
	}
	return ExportStep{Format: format, OutputFile: outputFile, Supported: supportedExports[format]}
}

// Step is the emitter-facing description of one operation.
type Step struct {
	// Index is the 1-based position in the operation list.
	Index int
	// Number counts code-producing steps (OPERATION_<n>); 0 for boundaries.
	Number int

	Kind      Kind
	OpType    string
	Column    string
	Timestamp string

	// Metadata holds every recognized field, sorted by key.
	Metadata []oplog.Field
	Data     map[string]string

	Reconciliation oplog.Reconciliation
	Extension      oplog.Extension
	Propagation    oplog.Propagation
	Modification   oplog.Modification
	Export         ExportStep
}

// Rendered reports whether the step produces code (or a skip notice) in a
// script.
func (s Step) Rendered() bool {
	return s.Number > 0
}

// BuildSteps converts resolved operations into steps, in order.
func BuildSteps(ops []oplog.Record) []Step {
	steps := make([]Step, 0, len(ops))
	n := 0
	for i, op := range ops {
		s := Step{
			Index:     i + 1,
			OpType:    op.TypeName(),
			Column:    op.Column,
			Timestamp: op.Timestamp.String(),
			Metadata:  sortedFields(op),
			Data:      op.Map(),
		}

		switch op.Type {
		case oplog.OpReconciliation:
			s.Kind = KindReconcile
			s.Reconciliation, _ = op.Reconciliation()
		case oplog.OpExtension:
			s.Kind = KindExtend
			s.Extension, _ = op.Extension()
		case oplog.OpPropagateType:
			s.Kind = KindPropagate
			s.Propagation, _ = op.Propagation()
		case oplog.OpModification:
			s.Kind = KindModify
			s.Modification, _ = op.Modification()
		case oplog.OpExport:
			s.Kind = KindExport
			exp, _ := op.Export()
			s.Export = NewExportStep(exp.Format, exp.OutputFile)
		case oplog.OpGetTable, oplog.OpSaveTable:
			s.Kind = KindBoundary
		default:
			s.Kind = KindUnknown
		}

		if s.Kind != KindBoundary {
			n++
			s.Number = n
		}
		steps = append(steps, s)
	}
	return steps
}

func sortedFields(op oplog.Record) []oplog.Field {
	fields := op.Fields()
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}
