// Package internal holds the steps shared by the log-processing commands.
package internal

import (
	"context"

	"github.com/arthur-debert/semtparser/pkg/logsource"
	"github.com/arthur-debert/semtparser/pkg/oplog"
)

// ReadAndNormalize reads the log at location and runs the normalization
// pipeline over it. A nil reader reads from the OS filesystem.
func ReadAndNormalize(ctx context.Context, reader *logsource.Reader, location string, opts oplog.Options) (oplog.Result, error) {
	if reader == nil {
		reader = logsource.NewReader(logsource.Options{})
	}

	lines, err := reader.ReadLines(ctx, location)
	if err != nil {
		return oplog.Result{}, err
	}
	return oplog.Normalize(lines, opts), nil
}
