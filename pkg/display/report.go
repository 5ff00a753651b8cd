// Package display presents the outcome of log normalization to a user.
package display

import (
	"github.com/arthur-debert/semtparser/pkg/oplog"
)

// Report is the inspectable summary of one normalized log.
type Report struct {
	Source string `json:"source" yaml:"source"`
	Found  bool   `json:"found" yaml:"found"`

	// WindowStart and WindowEnd are 1-based log line numbers; WindowEnd is
	// 0 when the cycle is still open.
	WindowStart int `json:"windowStart" yaml:"windowStart"`
	WindowEnd   int `json:"windowEnd" yaml:"windowEnd"`
	WindowLines int `json:"windowLines" yaml:"windowLines"`

	Records        int      `json:"records" yaml:"records"`
	DatasetID      string   `json:"datasetId" yaml:"datasetId"`
	DeletedColumns []string `json:"deletedColumns" yaml:"deletedColumns"`
	HasExport      bool     `json:"hasExport" yaml:"hasExport"`
	Digest         string   `json:"digest" yaml:"digest"`

	Operations []Operation `json:"operations" yaml:"operations"`
}

// Operation is one surviving operation.
type Operation struct {
	Index     int               `json:"index" yaml:"index"`
	Type      string            `json:"type" yaml:"type"`
	Column    string            `json:"column,omitempty" yaml:"column,omitempty"`
	Tool      string            `json:"tool,omitempty" yaml:"tool,omitempty"`
	Timestamp string            `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Fields    map[string]string `json:"fields" yaml:"fields"`
}

// NewReport summarizes res, read from source.
func NewReport(source string, res oplog.Result) Report {
	r := Report{
		Source:         source,
		Found:          res.Found(),
		WindowLines:    len(res.Window.Lines),
		Records:        len(res.Records),
		DatasetID:      res.DatasetID,
		DeletedColumns: res.DeletedColumns,
		HasExport:      res.HasExport,
		Digest:         res.Digest,
		Operations:     make([]Operation, 0, len(res.Operations)),
	}
	if r.DeletedColumns == nil {
		r.DeletedColumns = []string{}
	}
	if res.Found() {
		r.WindowStart = res.Window.Start + 1
		if res.Window.End >= 0 {
			r.WindowEnd = res.Window.End + 1
		}
	}

	for i, op := range res.Operations {
		r.Operations = append(r.Operations, Operation{
			Index:     i + 1,
			Type:      op.TypeName(),
			Column:    op.Column,
			Tool:      op.Tool,
			Timestamp: op.Timestamp.String(),
			Fields:    op.Map(),
		})
	}
	return r
}
