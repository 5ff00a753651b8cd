package inspect

import (
	"context"

	"github.com/arthur-debert/semtparser/pkg/commands/internal"
	"github.com/arthur-debert/semtparser/pkg/display"
	"github.com/arthur-debert/semtparser/pkg/logging"
	"github.com/arthur-debert/semtparser/pkg/logsource"
	"github.com/arthur-debert/semtparser/pkg/oplog"
)

// InspectOptions holds options for the inspect command
type InspectOptions struct {
	Reader   *logsource.Reader
	LogFile  string
	Pipeline oplog.Options
}

// Inspect normalizes a log and reports the surviving operations without
// writing anything.
func Inspect(ctx context.Context, opts InspectOptions) (*display.Report, error) {
	log := logging.GetLogger("commands.inspect")
	log.Debug().Str("command", "Inspect").Str("log", opts.LogFile).Msg("Executing command")

	res, err := internal.ReadAndNormalize(ctx, opts.Reader, opts.LogFile, opts.Pipeline)
	if err != nil {
		return nil, err
	}

	report := display.NewReport(opts.LogFile, res)
	return &report, nil
}
