// pkg/emit/step_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test conversion of resolved operations into emitter steps

package emit_test

import (
	"testing"

	"github.com/arthur-debert/semtparser/pkg/emit"
	"github.com/arthur-debert/semtparser/pkg/oplog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSteps_KindsAndNumbering(t *testing.T) {
	res := oplog.Normalize(fullSession(), oplog.DefaultOptions())
	steps := emit.BuildSteps(res.Operations)
	require.Len(t, steps, 8)

	type row struct {
		index, number int
		kind          emit.Kind
		opType        string
	}
	var got []row
	for _, s := range steps {
		got = append(got, row{s.Index, s.Number, s.Kind, s.OpType})
	}
	assert.Equal(t, []row{
		{1, 0, emit.KindBoundary, "GET_TABLE"},
		{2, 1, emit.KindReconcile, "RECONCILIATION"},
		{3, 2, emit.KindExtend, "EXTENSION"},
		{4, 3, emit.KindPropagate, "PROPAGATE_TYPE"},
		{5, 4, emit.KindModify, "MODIFICATION"},
		{6, 5, emit.KindUnknown, "FILTER_ROWS"},
		{7, 6, emit.KindExport, "EXPORT"},
		{8, 0, emit.KindBoundary, "SAVE_TABLE"},
	}, got)
}

func TestBuildSteps_TypedViews(t *testing.T) {
	res := oplog.Normalize(fullSession(), oplog.DefaultOptions())
	steps := emit.BuildSteps(res.Operations)

	assert.Equal(t, "geo", steps[1].Reconciliation.Reconciler)
	assert.Equal(t, []string{"Country"}, steps[1].Reconciliation.AdditionalColumns)

	assert.Equal(t, "meteo", steps[2].Extension.Extender)
	assert.Equal(t, []string{"temp", "rain"}, steps[2].Extension.Properties)
	assert.Equal(t, "Date", steps[2].Extension.DateColumn)

	assert.JSONEq(t, `{"type":{"id":"wd:Q515"}}`, steps[3].Propagation.Type)
	assert.Equal(t, "dateFormatter", steps[4].Modification.Modifier)

	assert.Equal(t, emit.ExportStep{Format: "csv", OutputFile: "out.csv", Supported: true}, steps[6].Export)
	assert.True(t, steps[6].Rendered())
	assert.False(t, steps[0].Rendered())
}

func TestBuildSteps_MetadataSorted(t *testing.T) {
	rec := oplog.ParseLine(logLine(ts(1), "RECONCILIATION", "Reconciler", "geo", "ColumnName", "City"))
	steps := emit.BuildSteps([]oplog.Record{rec})
	require.Len(t, steps, 1)

	var keys []string
	for _, f := range steps[0].Metadata {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"ColumnName", "OpType", "Reconciler", "timestamp"}, keys)
	assert.Equal(t, "City", steps[0].Data["ColumnName"])
}

func TestNewExportStep(t *testing.T) {
	tests := []struct {
		name   string
		format string
		file   string
		want   emit.ExportStep
	}{
		{"csv", "csv", "a.csv", emit.ExportStep{Format: "csv", OutputFile: "a.csv", Supported: true}},
		{"upper case", " JSON ", "a.json", emit.ExportStep{Format: "json", OutputFile: "a.json", Supported: true}},
		{"w3c", "w3c", "a.jsonld", emit.ExportStep{Format: "w3c", OutputFile: "a.jsonld", Supported: true}},
		{"unsupported", "xlsx", "a.xlsx", emit.ExportStep{Format: "xlsx", OutputFile: "a.xlsx"}},
		{"missing format", "", "", emit.ExportStep{OutputFile: oplog.DefaultExportFile}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, emit.NewExportStep(tt.format, tt.file))
		})
	}
}
