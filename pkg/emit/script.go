package emit

import (
	"github.com/arthur-debert/semtparser/pkg/logging"
)

// ScriptEmitter produces a single Python file.
type ScriptEmitter struct{}

func (ScriptEmitter) Format() string    { return FormatScript }
func (ScriptEmitter) Extension() string { return ".py" }

// Render writes the setup, load, one block per operation, the default
// export when needed, and the closing summary.
func (ScriptEmitter) Render(doc Document) ([]byte, error) {
	log := logging.GetLogger("emit.script")

	out, err := render("script", doc)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("steps", len(doc.Summary)).
		Int("bytes", len(out)).
		Msg("Rendered script")
	return []byte(out), nil
}
