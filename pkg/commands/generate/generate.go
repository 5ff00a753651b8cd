package generate

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/semtparser/pkg/commands/internal"
	"github.com/arthur-debert/semtparser/pkg/config"
	"github.com/arthur-debert/semtparser/pkg/emit"
	"github.com/arthur-debert/semtparser/pkg/errors"
	"github.com/arthur-debert/semtparser/pkg/filesystem"
	"github.com/arthur-debert/semtparser/pkg/logging"
	"github.com/arthur-debert/semtparser/pkg/logsource"
	"github.com/arthur-debert/semtparser/pkg/oplog"
)

// GenerateOptions holds options for the generate command
type GenerateOptions struct {
	// Reader fetches the log; nil reads from the OS filesystem.
	Reader *logsource.Reader
	// FS receives the artifact and is checked for the table file; nil is
	// the OS filesystem.
	FS filesystem.FS

	LogFile   string
	TableFile string

	// Format is script or notebook; "python" is accepted for script.
	Format string

	// OutputFile overrides the default artifact name in OutputDir.
	OutputDir  string
	OutputFile string

	TablePrefix      string
	DefaultExport    string
	ValidateNotebook bool

	Pipeline oplog.Options
	Service  emit.Service
	Version  string

	// Now stamps file and table names; time.Now when zero.
	Now time.Time
}

// GenerateResult describes the written artifact.
type GenerateResult struct {
	Path       string   `json:"path"`
	Format     string   `json:"format"`
	Found      bool     `json:"found"`
	Operations int      `json:"operations"`
	DatasetID  string   `json:"datasetId"`
	Digest     string   `json:"digest"`
	Warnings   []string `json:"warnings"`
}

// Generate reads a log, normalizes it and writes the replay artifact.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	log := logging.GetLogger("commands.generate")
	log.Debug().
		Str("command", "Generate").
		Str("log", opts.LogFile).
		Str("format", opts.Format).
		Msg("Executing command")

	format, err := config.NormalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	res, err := internal.ReadAndNormalize(ctx, opts.Reader, opts.LogFile, opts.Pipeline)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Format:     format,
		Found:      res.Found(),
		Operations: len(res.Operations),
		DatasetID:  res.DatasetID,
		Digest:     res.Digest,
		Warnings:   []string{},
	}

	if !res.Found() {
		result.Warnings = append(result.Warnings, "no GET_TABLE entry in the log; the artifact only loads the table")
	}
	if !opts.FS.Exists(opts.TableFile) {
		log.Warn().Str("path", opts.TableFile).Msg("Table file not found, generating code anyway")
		result.Warnings = append(result.Warnings, "table file "+opts.TableFile+" not found")
	}

	emitter, err := emit.New(format, opts.ValidateNotebook)
	if err != nil {
		return nil, err
	}

	doc := emit.NewDocument(res, emit.Params{
		Source:        opts.LogFile,
		TableFile:     opts.TableFile,
		TableName:     emit.TableName(opts.TablePrefix, opts.Now),
		Service:       opts.Service,
		DefaultExport: opts.DefaultExport,
		Version:       opts.Version,
		Now:           opts.Now,
	})
	data, err := emitter.Render(doc)
	if err != nil {
		return nil, err
	}

	path := opts.OutputFile
	if path == "" {
		path = filepath.Join(opts.OutputDir, emit.FileName(format, opts.Now))
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := opts.FS.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create output directory %s", dir).
				WithDetail("path", dir)
		}
	}
	if err := opts.FS.WriteFile(path, data, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).
			WithDetail("path", path)
	}
	result.Path = path

	log.Info().
		Str("path", path).
		Str("format", format).
		Int("operations", result.Operations).
		Str("digest", res.Digest).
		Msg("Generated replay artifact")
	return result, nil
}
