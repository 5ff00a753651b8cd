package config

import (
	"strings"

	"github.com/arthur-debert/semtparser/pkg/emit"
	"github.com/arthur-debert/semtparser/pkg/errors"
	"github.com/arthur-debert/semtparser/pkg/logsource"
	"github.com/arthur-debert/semtparser/pkg/oplog"
)

// Config is the complete semtparser configuration.
type Config struct {
	Service  Service  `koanf:"service" toml:"service" comment:"SemT service the generated code talks to"`
	Pipeline Pipeline `koanf:"pipeline" toml:"pipeline" comment:"Log normalization policies"`
	Input    Input    `koanf:"input" toml:"input" comment:"Default inputs"`
	Output   Output   `koanf:"output" toml:"output" comment:"Generated artifacts"`
	Source   Source   `koanf:"source" toml:"source"`
}

type Service struct {
	BaseURL  string `koanf:"base_url" toml:"base_url" comment:"Also read from BASE_URL"`
	APIURL   string `koanf:"api_url" toml:"api_url" comment:"Also read from API_URL"`
	Username string `koanf:"username" toml:"username" comment:"Also read from USERNAME"`
	Password Secret `koanf:"password" toml:"password" comment:"Also read from PASSWORD; written only into generated artifacts"`
}

type Pipeline struct {
	Window            string `koanf:"window" toml:"window" comment:"cycle or cycle+exports"`
	Emission          string `koanf:"emission" toml:"emission" comment:"chronological or reconciliation-first"`
	ExtensionKeep     string `koanf:"extension_keep" toml:"extension_keep" comment:"first or last duplicate extension survives"`
	UnknownTimestamps string `koanf:"unknown_timestamps" toml:"unknown_timestamps" comment:"sort unparseable timestamps first or last"`
}

type Input struct {
	LogFile   string `koanf:"log_file" toml:"log_file" comment:"Path, .gz/.zst file or s3://bucket/key"`
	TableFile string `koanf:"table_file" toml:"table_file"`
}

type Output struct {
	Dir              string `koanf:"dir" toml:"dir"`
	Format           string `koanf:"format" toml:"format" comment:"script or notebook"`
	TablePrefix      string `koanf:"table_prefix" toml:"table_prefix"`
	DefaultDatasetID string `koanf:"default_dataset_id" toml:"default_dataset_id"`
	DefaultExport    string `koanf:"default_export" toml:"default_export" comment:"JSON export file used when the log has no EXPORT"`
	ValidateNotebook bool   `koanf:"validate_notebook" toml:"validate_notebook"`
}

type Source struct {
	S3 S3 `koanf:"s3" toml:"s3" comment:"Credentials for s3:// log files"`
}

type S3 struct {
	Region          string `koanf:"region" toml:"region"`
	Endpoint        string `koanf:"endpoint" toml:"endpoint" comment:"Custom endpoint, e.g. a MinIO server"`
	PathStyle       bool   `koanf:"path_style" toml:"path_style"`
	Anonymous       bool   `koanf:"anonymous" toml:"anonymous"`
	AccessKeyID     string `koanf:"access_key_id" toml:"access_key_id"`
	SecretAccessKey Secret `koanf:"secret_access_key" toml:"secret_access_key"`
}

// Secret is a string that never shows up in logs or printed config.
type Secret string

const redacted = "********"

// String returns a redacted form.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

// Value returns the secret itself.
func (s Secret) Value() string {
	return string(s)
}

// MarshalJSON keeps secrets out of JSON and structured logs.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Output formats.
const (
	FormatScript   = emit.FormatScript
	FormatNotebook = emit.FormatNotebook
)

// NormalizeFormat maps user input to a known format. "python" is an alias of
// "script".
func NormalizeFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "script", "python", "py":
		return FormatScript, nil
	case "notebook", "ipynb":
		return FormatNotebook, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown output format %q (want script or notebook)", s).
		WithDetail("format", s)
}

// PipelineOptions converts the policy settings into oplog options.
func (c *Config) PipelineOptions() (oplog.Options, error) {
	opts := oplog.DefaultOptions()

	window, err := oplog.ParseWindowMode(c.Pipeline.Window)
	if err != nil {
		return opts, errors.Wrap(err, errors.ErrConfigValid, "invalid pipeline.window")
	}
	emission, err := oplog.ParseEmissionPolicy(c.Pipeline.Emission)
	if err != nil {
		return opts, errors.Wrap(err, errors.ErrConfigValid, "invalid pipeline.emission")
	}
	keep, err := oplog.ParseExtensionTieBreak(c.Pipeline.ExtensionKeep)
	if err != nil {
		return opts, errors.Wrap(err, errors.ErrConfigValid, "invalid pipeline.extension_keep")
	}
	unknown, err := oplog.ParseUnknownTimestamps(c.Pipeline.UnknownTimestamps)
	if err != nil {
		return opts, errors.Wrap(err, errors.ErrConfigValid, "invalid pipeline.unknown_timestamps")
	}

	opts.Window = window
	opts.UnknownTimestamps = unknown
	opts.Resolve = oplog.ResolveOptions{ExtensionTieBreak: keep, Emission: emission}
	if c.Output.DefaultDatasetID != "" {
		opts.DefaultDatasetID = c.Output.DefaultDatasetID
	}
	return opts, nil
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := c.PipelineOptions(); err != nil {
		return err
	}
	if _, err := NormalizeFormat(c.Output.Format); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output.format")
	}
	return nil
}

// EmitService returns the connection settings written into artifacts.
func (c *Config) EmitService() emit.Service {
	return emit.Service{
		BaseURL:  c.Service.BaseURL,
		APIURL:   c.Service.APIURL,
		Username: c.Service.Username,
		Password: c.Service.Password.Value(),
	}
}

// S3Config returns the settings used for s3:// log locations.
func (c *Config) S3Config() logsource.S3Config {
	return logsource.S3Config{
		Region:          c.Source.S3.Region,
		Endpoint:        c.Source.S3.Endpoint,
		PathStyle:       c.Source.S3.PathStyle,
		Anonymous:       c.Source.S3.Anonymous,
		AccessKeyID:     c.Source.S3.AccessKeyID,
		SecretAccessKey: c.Source.S3.SecretAccessKey.Value(),
	}
}
