// pkg/oplog/payload_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test tolerant AdditionalData access and the typed record views

package oplog_test

import (
	"testing"

	"github.com/arthur-debert/semtparser/pkg/oplog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"broken json", `{"properties": "a b"`},
		{"array", `["a","b"]`},
		{"string", `"just text"`},
		{"number", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := oplog.ParsePayload(tt.raw)
			assert.False(t, p.Valid())
			assert.Equal(t, "{}", p.JSON())
			assert.Empty(t, p.Properties())
			assert.Empty(t, p.AdditionalColumns())
			assert.Equal(t, "", p.DateColumn())
			assert.Equal(t, "", p.ExportFormat())
			assert.Equal(t, oplog.DefaultExportFile, p.OutputFile())
		})
	}
}

func TestPayload_Properties(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "space separated properties",
			raw:  `{"properties":"temp  humidity wind"}`,
			want: []string{"temp", "humidity", "wind"},
		},
		{
			name: "property array wins over properties",
			raw:  `{"property":["P31","P17"],"properties":"ignored"}`,
			want: []string{"P31", "P17"},
		},
		{
			name: "weather params and labels appended",
			raw:  `{"properties":"a","weatherParams":["rain"],"labels":["x","y"]}`,
			want: []string{"a", "rain", "x", "y"},
		},
		{
			name: "non string items skipped",
			raw:  `{"property":["P31",7,null,"P17"]}`,
			want: []string{"P31", "P17"},
		},
		{
			name: "property of the wrong type falls back",
			raw:  `{"property":"P31","properties":"b"}`,
			want: []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, oplog.ParsePayload(tt.raw).Properties())
		})
	}
}

func TestPayload_DateColumn(t *testing.T) {
	p := oplog.ParsePayload(`{"dates":{"0":["2024-01-01","x","Date"],"1":["2024-01-02","y","Other"]}}`)
	assert.Equal(t, "Date", p.DateColumn())

	assert.Equal(t, "", oplog.ParsePayload(`{"dates":{"0":["only","two"]}}`).DateColumn())
	assert.Equal(t, "", oplog.ParsePayload(`{"dates":["not","an","object"]}`).DateColumn())
	assert.Equal(t, "", oplog.ParsePayload(`{"dates":{}}`).DateColumn())
}

func TestPayload_AdditionalColumnsDocumentOrder(t *testing.T) {
	p := oplog.ParsePayload(`{"additionalColumns":{"zeta":1,"alpha":2,"mid":3}}`)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, p.AdditionalColumns())
}

func TestPayload_Export(t *testing.T) {
	p := oplog.ParsePayload(`{"format":"w3c","outputFile":"out.json"}`)
	assert.True(t, p.Valid())
	assert.Equal(t, "w3c", p.ExportFormat())
	assert.Equal(t, "out.json", p.OutputFile())

	p = oplog.ParsePayload(`{"format":"csv","outputFile":""}`)
	assert.Equal(t, oplog.DefaultExportFile, p.OutputFile())
}

func TestPayload_JSONIsCompact(t *testing.T) {
	p := oplog.ParsePayload(`{ "type" : "string",  "nested": {"a": [1, 2]} }`)
	assert.Equal(t, `{"type":"string","nested":{"a":[1,2]}}`, p.JSON())
}

func TestRecordViews(t *testing.T) {
	t.Run("reconciliation", func(t *testing.T) {
		r := oplog.ParseLine(logLine(ts(1), "RECONCILIATION",
			"ColumnName", "City", "Reconciler", "geocodingHere",
			"AdditionalData", `{"additionalColumns":{"lat":[],"lon":[]}}`))

		view, ok := r.Reconciliation()
		require.True(t, ok)
		assert.Equal(t, oplog.Reconciliation{
			Column:            "City",
			Reconciler:        "geocodingHere",
			AdditionalColumns: []string{"lat", "lon"},
		}, view)

		_, ok = r.Extension()
		assert.False(t, ok)
	})

	t.Run("extension", func(t *testing.T) {
		r := oplog.ParseLine(logLine(ts(1), "EXTENSION",
			"ColumnName", "City", "Extender", "meteoPropertiesOpenMeteo",
			"AdditionalData", `{"weatherParams":["rain"],"dates":{"0":["d","v","Date"]}}`))

		view, ok := r.Extension()
		require.True(t, ok)
		assert.Equal(t, "meteoPropertiesOpenMeteo", view.Extender)
		assert.Equal(t, []string{"rain"}, view.Properties)
		assert.Equal(t, "Date", view.DateColumn)
	})

	t.Run("propagation and modification", func(t *testing.T) {
		p := oplog.ParseLine(logLine(ts(1), "PROPAGATE_TYPE", "ColumnName", "A",
			"AdditionalData", `{"type": {"id":"Q5"}}`))
		view, ok := p.Propagation()
		require.True(t, ok)
		assert.Equal(t, `{"type":{"id":"Q5"}}`, view.Type)

		m := oplog.ParseLine(logLine(ts(1), "MODIFICATION", "ColumnName", "A",
			"Modifier", "dateFormatter", "AdditionalData", `{"format": "iso"}`))
		mod, ok := m.Modification()
		require.True(t, ok)
		assert.Equal(t, "dateFormatter", mod.Modifier)
		assert.Equal(t, `{"format":"iso"}`, mod.Props)
	})

	t.Run("export", func(t *testing.T) {
		r := oplog.ParseLine(logLine(ts(1), "EXPORT", "AdditionalData", `{"format":"csv"}`))
		view, ok := r.Export()
		require.True(t, ok)
		assert.Equal(t, oplog.Export{Format: "csv", OutputFile: oplog.DefaultExportFile}, view)
	})
}
