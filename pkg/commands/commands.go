// Package commands provides the command implementations behind the
// semtparser CLI.
//
// Each command lives in its own subdirectory:
//   - generate/  - Generate: log to Python script or notebook
//   - inspect/   - Inspect: normalized operation report
//   - window/    - Window: the log lines selected for processing
//   - genconfig/ - GenConfig: commented default configuration
//   - internal/  - shared read-and-normalize step
//
// This file re-exports the command functions so callers import one package.
package commands

import (
	"context"

	"github.com/arthur-debert/semtparser/pkg/commands/genconfig"
	"github.com/arthur-debert/semtparser/pkg/commands/generate"
	"github.com/arthur-debert/semtparser/pkg/commands/inspect"
	"github.com/arthur-debert/semtparser/pkg/commands/window"
	"github.com/arthur-debert/semtparser/pkg/display"
	"github.com/arthur-debert/semtparser/pkg/oplog"
)

// Generate writes the replay artifact for a log.
type GenerateOptions = generate.GenerateOptions
type GenerateResult = generate.GenerateResult

func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return generate.Generate(ctx, opts)
}

// Inspect reports the normalized operations of a log.
type InspectOptions = inspect.InspectOptions

func Inspect(ctx context.Context, opts InspectOptions) (*display.Report, error) {
	return inspect.Inspect(ctx, opts)
}

// Window returns the log lines selected for processing.
type WindowOptions = window.WindowOptions

func Window(ctx context.Context, opts WindowOptions) (*oplog.Window, error) {
	return window.Window(ctx, opts)
}

// GenConfig outputs or writes the default configuration.
type GenConfigOptions = genconfig.GenConfigOptions
type GenConfigResult = genconfig.GenConfigResult

func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
