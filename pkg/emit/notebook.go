package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arthur-debert/semtparser/pkg/errors"
	"github.com/arthur-debert/semtparser/pkg/logging"
	"github.com/google/uuid"
)

const (
	nbformatMajor = 4
	nbformatMinor = 5
)

type codeCell struct {
	ID             string                 `json:"id"`
	CellType       string                 `json:"cell_type"`
	Metadata       map[string]interface{} `json:"metadata"`
	Source         []string               `json:"source"`
	ExecutionCount *int                   `json:"execution_count"`
	Outputs        []interface{}          `json:"outputs"`
}

type markdownCell struct {
	ID       string                 `json:"id"`
	CellType string                 `json:"cell_type"`
	Metadata map[string]interface{} `json:"metadata"`
	Source   []string               `json:"source"`
}

type notebook struct {
	Cells         []interface{}          `json:"cells"`
	Metadata      map[string]interface{} `json:"metadata"`
	NBFormat      int                    `json:"nbformat"`
	NBFormatMinor int                    `json:"nbformat_minor"`
}

// NotebookEmitter produces an nbformat 4.5 notebook.
type NotebookEmitter struct {
	// Validate checks the output against the embedded nbformat schema.
	Validate bool
	// NewID returns cell ids; uuid.NewString when nil.
	NewID func() string
}

func (*NotebookEmitter) Format() string    { return FormatNotebook }
func (*NotebookEmitter) Extension() string { return ".ipynb" }

// Render lays out a markdown header and a code cell per step, with the
// operation's fields in the cell metadata. Boundaries and unknown types get
// the header only.
func (e *NotebookEmitter) Render(doc Document) ([]byte, error) {
	log := logging.GetLogger("emit.notebook")

	b := &cellBuilder{newID: e.NewID}
	if b.newID == nil {
		b.newID = uuid.NewString
	}

	b.markdown(fmt.Sprintf("# SemT operations replay\n\nGenerated by semtparser %s on %s from `%s`.",
		doc.Version, doc.Generated, orNA(doc.Source)), nil)

	setup, err := render("setup", doc)
	if err != nil {
		return nil, err
	}
	b.markdown("## Setup", nil)
	b.code(setup, map[string]interface{}{"semtparser": map[string]interface{}{"cell_type": "setup"}})

	load, err := render("load", doc)
	if err != nil {
		return nil, err
	}
	b.markdown("## Load table", nil)
	b.code(load, map[string]interface{}{"semtparser": map[string]interface{}{
		"cell_type":       "load",
		"dataset_id":      doc.DatasetID,
		"deleted_columns": doc.DeletedColumns,
	}})

	for _, s := range doc.Steps {
		heading, err := render("heading", s)
		if err != nil {
			return nil, err
		}
		meta := map[string]interface{}{"semtparser": map[string]interface{}{
			"operation_index": s.Index,
			"operation_type":  s.OpType,
			"operation_data":  s.Data,
		}}
		if s.Kind == KindBoundary || s.Kind == KindUnknown {
			b.markdown(heading, meta)
			continue
		}
		b.markdown(heading, nil)

		code, err := render("code", s)
		if err != nil {
			return nil, err
		}
		b.code(code, meta)
	}

	if doc.Fallback != nil {
		code, err := render("export", doc.Fallback)
		if err != nil {
			return nil, err
		}
		b.markdown("## Default export (JSON)", nil)
		b.code(code, map[string]interface{}{"semtparser": map[string]interface{}{"cell_type": "default_export"}})
	}

	b.markdown(summaryMarkdown(doc), map[string]interface{}{"semtparser": map[string]interface{}{
		"cell_type":        "summary",
		"total_operations": len(doc.Steps),
		"operation_types":  operationTypes(doc.Steps),
	}})

	nb := notebook{
		Cells:         b.cells,
		Metadata:      notebookMetadata(doc),
		NBFormat:      nbformatMajor,
		NBFormatMinor: nbformatMinor,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(nb); err != nil {
		return nil, errors.Wrap(err, errors.ErrArtifactRender, "failed to encode notebook")
	}
	data := buf.Bytes()

	if e.Validate {
		if err := ValidateNotebook(data); err != nil {
			return nil, err
		}
	}

	log.Debug().
		Int("cells", len(nb.Cells)).
		Bool("validated", e.Validate).
		Msg("Rendered notebook")
	return data, nil
}

type cellBuilder struct {
	newID func() string
	cells []interface{}
}

func (b *cellBuilder) markdown(text string, metadata map[string]interface{}) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	b.cells = append(b.cells, markdownCell{
		ID:       b.newID(),
		CellType: "markdown",
		Metadata: metadata,
		Source:   sourceLines(text),
	})
}

func (b *cellBuilder) code(text string, metadata map[string]interface{}) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	b.cells = append(b.cells, codeCell{
		ID:       b.newID(),
		CellType: "code",
		Metadata: metadata,
		Source:   sourceLines(text),
		Outputs:  []interface{}{},
	})
}

// sourceLines splits text the way Jupyter stores it: every line but the
// last keeps its newline.
func sourceLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return []string{}
	}
	lines := strings.SplitAfter(text, "\n")
	return lines
}

func summaryMarkdown(doc Document) string {
	var sb strings.Builder
	sb.WriteString("# Operation Summary\n\n")
	fmt.Fprintf(&sb, "**Total operations processed:** %d\n\n", len(doc.Steps))
	for _, s := range doc.Steps {
		fmt.Fprintf(&sb, "%d. **%s** on column `%s` at `%s`\n", s.Index, orNA(s.OpType), orNA(s.Column), orNA(s.Timestamp))
	}
	fmt.Fprintf(&sb, "\nDigest: `sha256:%s`", doc.Digest)
	return sb.String()
}

// operationTypes lists the distinct types in order of first appearance.
func operationTypes(steps []Step) []string {
	seen := map[string]bool{}
	types := []string{}
	for _, s := range steps {
		if !seen[s.OpType] {
			seen[s.OpType] = true
			types = append(types, s.OpType)
		}
	}
	return types
}

func notebookMetadata(doc Document) map[string]interface{} {
	return map[string]interface{}{
		"kernelspec": map[string]interface{}{
			"display_name": "Python 3",
			"language":     "python",
			"name":         "python3",
		},
		"language_info": map[string]interface{}{
			"name":           "python",
			"file_extension": ".py",
			"mimetype":       "text/x-python",
		},
		"semtparser": map[string]interface{}{
			"version":    doc.Version,
			"digest":     doc.Digest,
			"dataset_id": doc.DatasetID,
			"generated":  doc.Generated,
		},
	}
}
