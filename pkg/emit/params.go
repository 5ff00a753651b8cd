package emit

import (
	"time"

	"github.com/arthur-debert/semtparser/pkg/oplog"
)

// Output formats.
const (
	FormatScript   = "script"
	FormatNotebook = "notebook"
)

// StampLayout formats the generation time in file and table names.
const StampLayout = "2006-01-02_15-04"

// DefaultTablePrefix prefixes generated table names.
const DefaultTablePrefix = "test_table-"

// Service holds the SemT connection settings written into artifacts.
type Service struct {
	BaseURL  string
	APIURL   string
	Username string
	Password string
}

// Params are the inputs an artifact needs besides the operations.
type Params struct {
	// Source names the log the artifact was generated from.
	Source    string
	TableFile string
	TableName string
	Service   Service

	// DefaultExport is the JSON export written when no EXPORT survived;
	// empty disables it.
	DefaultExport string

	Version string
	Now     time.Time
}

// Document is the template data for one artifact.
type Document struct {
	Params

	DatasetID      string
	DeletedColumns []string
	Digest         string
	Generated      string

	Steps []Step
	// Summary lists the code-producing steps.
	Summary []Step
	// Fallback is the default export, set only when the log had none.
	Fallback *ExportStep
}

// NewDocument assembles the template data for res.
func NewDocument(res oplog.Result, p Params) Document {
	if p.Now.IsZero() {
		p.Now = time.Now()
	}

	doc := Document{
		Params:         p,
		DatasetID:      res.DatasetID,
		DeletedColumns: res.DeletedColumns,
		Digest:         res.Digest,
		Generated:      p.Now.UTC().Format(time.RFC3339),
		Steps:          BuildSteps(res.Operations),
		Summary:        []Step{},
	}
	for _, s := range doc.Steps {
		if s.Rendered() {
			doc.Summary = append(doc.Summary, s)
		}
	}
	if !res.HasExport && p.DefaultExport != "" {
		fallback := NewExportStep("json", p.DefaultExport)
		doc.Fallback = &fallback
	}
	return doc
}

// Stamp formats t for file and table names.
func Stamp(t time.Time) string {
	return t.UTC().Format(StampLayout)
}

// TableName returns the name the generated code gives the uploaded table.
func TableName(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultTablePrefix
	}
	return prefix + Stamp(now)
}

// FileName returns the default artifact file name for format.
func FileName(format string, now time.Time) string {
	if format == FormatNotebook {
		return "base_notebook_file_" + Stamp(now) + ".ipynb"
	}
	return "base_file_" + Stamp(now) + ".py"
}
