package emit

import (
	"bytes"
	"embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/arthur-debert/semtparser/pkg/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var blocks = template.Must(
	template.New("blocks").
		Funcs(template.FuncMap{
			"py":     pyString,
			"pylist": pyList,
			"na":     orNA,
		}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// pyString renders s as a double-quoted Python string literal. JSON string
// escapes are a subset of Python's, so the encoder output is valid source.
func pyString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// pyList renders items as a Python list of string literals.
func pyList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = pyString(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// render executes the named block.
func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := blocks.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrArtifactRender, "failed to render %s block", name)
	}
	return buf.String(), nil
}
