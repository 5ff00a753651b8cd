// pkg/oplog/window_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test load-cycle windowing and both trailing-export variants

package oplog_test

import (
	"testing"

	"github.com/arthur-debert/semtparser/pkg/oplog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWindow(t *testing.T) {
	var (
		oldGet   = logLine("2024-05-01T09:00:00Z", "GET_TABLE", "DatasetId", "1")
		oldRec   = logLine("2024-05-01T09:01:00Z", "RECONCILIATION", "ColumnName", "Old")
		oldSave  = logLine("2024-05-01T09:02:00Z", "SAVE_TABLE")
		get      = logLine("2024-05-01T10:00:00Z", "GET_TABLE", "DatasetId", "2")
		rec      = logLine("2024-05-01T10:01:00Z", "RECONCILIATION", "ColumnName", "City")
		midSave  = logLine("2024-05-01T10:02:00Z", "SAVE_TABLE")
		ext      = logLine("2024-05-01T10:03:00Z", "EXTENSION", "ColumnName", "City")
		save     = logLine("2024-05-01T10:04:00Z", "SAVE_TABLE", "DeletedCols", "x")
		export   = logLine("2024-05-01T10:05:00Z", "EXPORT", "AdditionalData", `{"format":"csv"}`)
		trailing = logLine("2024-05-01T10:06:00Z", "EXTENSION", "ColumnName", "Late")
	)

	tests := []struct {
		name      string
		lines     []string
		mode      oplog.WindowMode
		wantFound bool
		want      []string
	}{
		{
			name:      "last cycle through closing save",
			lines:     []string{oldGet, oldRec, oldSave, get, rec, midSave, ext, save, export, trailing},
			mode:      oplog.WindowCycle,
			wantFound: true,
			want:      []string{get, rec, midSave, ext, save},
		},
		{
			name:      "trailing exports variant",
			lines:     []string{oldGet, oldRec, oldSave, get, rec, midSave, ext, save, export, trailing},
			mode:      oplog.WindowCycleWithExports,
			wantFound: true,
			want:      []string{get, rec, midSave, ext, save, export},
		},
		{
			name:      "no save reads to end of file",
			lines:     []string{oldSave, get, rec, ext},
			mode:      oplog.WindowCycle,
			wantFound: true,
			want:      []string{get, rec, ext},
		},
		{
			name:      "no save with exports variant reads to end of file",
			lines:     []string{get, rec, export},
			mode:      oplog.WindowCycleWithExports,
			wantFound: true,
			want:      []string{get, rec, export},
		},
		{
			name:      "blank lines skipped",
			lines:     []string{"", get, "   ", rec, "", save, ""},
			mode:      oplog.WindowCycle,
			wantFound: true,
			want:      []string{get, rec, save},
		},
		{
			name:      "save lines without get",
			lines:     []string{rec, save, ext, save},
			mode:      oplog.WindowCycle,
			wantFound: false,
		},
		{
			name:      "empty log",
			lines:     nil,
			mode:      oplog.WindowCycleWithExports,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := oplog.ExtractWindow(tt.lines, tt.mode)
			assert.Equal(t, tt.wantFound, w.Found)
			assert.Equal(t, tt.want, w.Lines)
		})
	}
}

func TestExtractWindow_DuplicateIdenticalLines(t *testing.T) {
	get := "[2024-05-01T10:00:00Z] -| OpType:GET_TABLE -| DatasetId:1"
	save := "[2024-05-01T10:05:00Z] -| OpType:SAVE_TABLE"
	first := logLine("2024-05-01T10:01:00Z", "RECONCILIATION", "ColumnName", "A")
	second := logLine("2024-05-01T10:02:00Z", "RECONCILIATION", "ColumnName", "B")

	w := oplog.ExtractWindow([]string{get, first, save, get, second, save}, oplog.WindowCycle)

	require.True(t, w.Found)
	assert.Equal(t, 3, w.Start)
	assert.Equal(t, 5, w.End)
	assert.Equal(t, []string{get, second, save}, w.Lines)
}

func TestExtractWindow_PayloadMentioningBoundaryIsNotBoundary(t *testing.T) {
	get := logLine("2024-05-01T10:00:00Z", "GET_TABLE")
	tricky := logLine("2024-05-01T10:01:00Z", "MODIFICATION", "ColumnName", "A",
		"AdditionalData", `{"note":"after GET_TABLE and SAVE_TABLE"}`)

	w := oplog.ExtractWindow([]string{get, tricky}, oplog.WindowCycle)

	assert.Equal(t, []string{get, tricky}, w.Lines)
	assert.Equal(t, -1, w.End)
}

func TestParseWindowMode(t *testing.T) {
	m, err := oplog.ParseWindowMode("cycle+exports")
	require.NoError(t, err)
	assert.Equal(t, oplog.WindowCycleWithExports, m)
	assert.Equal(t, "cycle+exports", m.String())

	m, err = oplog.ParseWindowMode("")
	require.NoError(t, err)
	assert.Equal(t, oplog.WindowCycle, m)

	_, err = oplog.ParseWindowMode("everything")
	assert.Error(t, err)
}
