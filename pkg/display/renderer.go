package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/semtparser/pkg/errors"
	"github.com/arthur-debert/semtparser/pkg/output/styles"
	"github.com/arthur-debert/semtparser/pkg/ui"
	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Render writes r to w in format f. FormatAuto is resolved against w.
func Render(w io.Writer, f ui.Format, r Report) error {
	var out string
	switch ui.Resolve(f, w) {
	case ui.FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode report")
		}
		out = string(data) + "\n"
	case ui.FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode report")
		}
		out = string(data)
	case ui.FormatTerminal:
		out = renderText(r, true)
	default:
		out = renderText(r, false)
	}

	_, err := io.WriteString(w, out)
	return err
}

func renderText(r Report, styled bool) string {
	style := func(name, s string) string {
		if !styled {
			return s
		}
		return styles.Render(name, s)
	}

	var sb strings.Builder
	sb.WriteString(style("Header", "Operation log "+r.Source))
	sb.WriteString("\n")

	if !r.Found {
		sb.WriteString(style("Warning", "No GET_TABLE entry found; nothing to replay."))
		sb.WriteString("\n")
		return sb.String()
	}

	window := fmt.Sprintf("lines %d-%d", r.WindowStart, r.WindowEnd)
	if r.WindowEnd == 0 {
		window = fmt.Sprintf("lines %d-end (no SAVE_TABLE)", r.WindowStart)
	}
	deleted := strings.Join(r.DeletedColumns, ", ")
	if deleted == "" {
		deleted = "none"
	}

	if styled {
		sb.WriteString(markdownSummary(r, window, deleted))
	} else {
		writeRows(&sb, r, window, deleted)
	}
	sb.WriteString("\n")

	sb.WriteString(operationTable(r.Operations, styled, style))
	return sb.String()
}

func writeRows(sb *strings.Builder, r Report, window, deleted string) {
	rows := [][2]string{
		{"Window", window},
		{"Records", strconv.Itoa(r.Records)},
		{"Operations", strconv.Itoa(len(r.Operations))},
		{"Dataset", r.DatasetID},
		{"Deleted", deleted},
		{"Export", strconv.FormatBool(r.HasExport)},
		{"Digest", "sha256:" + r.Digest},
	}
	for _, row := range rows {
		fmt.Fprintf(sb, "%-12s %s\n", row[0]+":", row[1])
	}
}

// markdownSummary renders the report header through glamour, falling back
// to the raw markdown.
func markdownSummary(r Report, window, deleted string) string {
	var md strings.Builder
	fmt.Fprintf(&md, "- **Window**: %s\n", window)
	fmt.Fprintf(&md, "- **Records**: %d, **operations**: %d\n", r.Records, len(r.Operations))
	fmt.Fprintf(&md, "- **Dataset**: `%s`\n", r.DatasetID)
	fmt.Fprintf(&md, "- **Deleted columns**: %s\n", deleted)
	fmt.Fprintf(&md, "- **Export recorded**: %t\n", r.HasExport)
	fmt.Fprintf(&md, "- **Digest**: `sha256:%s`\n", r.Digest)

	out, err := glamour.Render(md.String(), "auto")
	if err != nil {
		return md.String()
	}
	return out
}

// operationTable lays ops out with pterm; plain output has its escape codes
// stripped.
func operationTable(ops []Operation, styled bool, style func(string, string) string) string {
	data := pterm.TableData{{"#", "Type", "Column", "Tool", "Timestamp"}}
	for _, op := range ops {
		typeStyle := "OpType"
		switch op.Type {
		case "GET_TABLE", "SAVE_TABLE":
			typeStyle = "Boundary"
		}
		data = append(data, []string{
			strconv.Itoa(op.Index),
			style(typeStyle, op.Type),
			style("Column", dash(op.Column)),
			style("Tool", dash(op.Tool)),
			style("Timestamp", dash(op.Timestamp)),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return ""
	}
	if !styled {
		out = pterm.RemoveColorFromString(out)
	}
	return out + "\n"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
