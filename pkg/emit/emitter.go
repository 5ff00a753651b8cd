package emit

import (
	"strings"

	"github.com/arthur-debert/semtparser/pkg/errors"
)

// Emitter renders a Document into an artifact.
type Emitter interface {
	// Format returns FormatScript or FormatNotebook.
	Format() string
	// Extension is the artifact file extension, with the dot.
	Extension() string
	Render(doc Document) ([]byte, error)
}

// New returns the emitter for format. Notebook output is validated against
// the nbformat schema when validate is set.
func New(format string, validate bool) (Emitter, error) {
	switch strings.ToLower(format) {
	case FormatScript:
		return ScriptEmitter{}, nil
	case FormatNotebook:
		return &NotebookEmitter{Validate: validate}, nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unsupported output format %q", format).
		WithDetail("format", format)
}
