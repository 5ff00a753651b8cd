// pkg/display/renderer_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test report assembly and rendering in every output format

package display_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/semtparser/pkg/display"
	"github.com/arthur-debert/semtparser/pkg/oplog"
	"github.com/arthur-debert/semtparser/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func session() []string {
	return []string{
		"[2024-05-01T10:00:00Z] -| OpType:GET_TABLE -| DatasetId:3",
		"[2024-05-01T10:01:00Z] -| OpType:RECONCILIATION -| ColumnName:City -| Reconciler:geo",
		"[2024-05-01T10:02:00Z] -| OpType:SAVE_TABLE -| DeletedCols:tmp",
	}
}

func report(lines []string) display.Report {
	return display.NewReport("logs.txt", oplog.Normalize(lines, oplog.DefaultOptions()))
}

func TestNewReport(t *testing.T) {
	r := report(session())

	assert.True(t, r.Found)
	assert.Equal(t, 1, r.WindowStart)
	assert.Equal(t, 3, r.WindowEnd)
	assert.Equal(t, 3, r.WindowLines)
	assert.Equal(t, "3", r.DatasetID)
	assert.Equal(t, []string{"tmp"}, r.DeletedColumns)
	assert.False(t, r.HasExport)
	require.Len(t, r.Operations, 3)
	assert.Equal(t, display.Operation{
		Index:     2,
		Type:      "RECONCILIATION",
		Column:    "City",
		Tool:      "geo",
		Timestamp: "2024-05-01T10:01:00Z",
		Fields: map[string]string{
			"OpType":     "RECONCILIATION",
			"ColumnName": "City",
			"Reconciler": "geo",
			"timestamp":  "2024-05-01T10:01:00Z",
		},
	}, r.Operations[1])
}

func TestNewReport_OpenCycle(t *testing.T) {
	r := report(session()[:2])
	assert.Equal(t, 1, r.WindowStart)
	assert.Equal(t, 0, r.WindowEnd)
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.Render(&buf, ui.FormatText, report(session())))

	out := buf.String()
	assert.Contains(t, out, "Operation log logs.txt")
	assert.Contains(t, out, "lines 1-3")
	assert.Contains(t, out, "tmp")
	assert.Contains(t, out, "RECONCILIATION")
	assert.Contains(t, out, "geo")
	assert.NotContains(t, out, "\x1b[")
}

func TestRender_AutoOnBufferIsText(t *testing.T) {
	var auto, text bytes.Buffer
	require.NoError(t, display.Render(&auto, ui.FormatAuto, report(session())))
	require.NoError(t, display.Render(&text, ui.FormatText, report(session())))
	assert.Equal(t, text.String(), auto.String())
}

func TestRender_NotFound(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.Render(&buf, ui.FormatText, report([]string{"OpType:EXPORT"})))
	assert.Contains(t, buf.String(), "No GET_TABLE entry found")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.Render(&buf, ui.FormatJSON, report(session())))

	var got display.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, report(session()), got)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.Render(&buf, ui.FormatYAML, report(session())))

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "3", got["datasetId"])
	assert.Len(t, got["operations"], 3)
}

func TestRender_Terminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.Render(&buf, ui.FormatTerminal, report(session())))

	out := buf.String()
	assert.Contains(t, out, "Digest")
	assert.Contains(t, out, "RECONCILIATION")
	assert.Contains(t, out, "City")
}
