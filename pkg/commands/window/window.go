package window

import (
	"context"

	"github.com/arthur-debert/semtparser/pkg/logging"
	"github.com/arthur-debert/semtparser/pkg/logsource"
	"github.com/arthur-debert/semtparser/pkg/oplog"
)

// WindowOptions holds options for the window command
type WindowOptions struct {
	Reader  *logsource.Reader
	LogFile string
	Mode    oplog.WindowMode
}

// Window returns the slice of the log that would be processed.
func Window(ctx context.Context, opts WindowOptions) (*oplog.Window, error) {
	log := logging.GetLogger("commands.window")
	log.Debug().Str("command", "Window").Str("log", opts.LogFile).Msg("Executing command")

	reader := opts.Reader
	if reader == nil {
		reader = logsource.NewReader(logsource.Options{})
	}
	lines, err := reader.ReadLines(ctx, opts.LogFile)
	if err != nil {
		return nil, err
	}

	w := oplog.ExtractWindow(lines, opts.Mode)
	log.Info().
		Bool("found", w.Found).
		Int("start", w.Start).
		Int("end", w.End).
		Int("lines", len(w.Lines)).
		Msg("Extracted window")
	return &w, nil
}
