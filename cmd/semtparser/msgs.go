package semtparser

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Replay SemT operation logs as Python code"
	MsgGenerateShort   = "Generate a Python script or notebook from an operation log"
	MsgInspectShort    = "Show the normalized operations of a log"
	MsgWindowShort     = "Print the log lines of the last table-load cycle"
	MsgConfigShort     = "Manage the semtparser configuration"
	MsgConfigInitShort = "Write the default configuration file"
	MsgVersionShort    = "Print version information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgGenerated     = "Wrote %s (%s, %d operations, dataset %s)\n"
	MsgWarning       = "warning: %s"
	MsgNoWindow      = "No GET_TABLE entry found in %s"
	MsgConfigWritten = "Wrote default configuration to %s"
	MsgNoRootCommand = "no command specified"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrGenerate   = "failed to generate code: %w"
	MsgErrInspect    = "failed to inspect log: %w"
	MsgErrWindow     = "failed to read log window: %w"
	MsgErrConfigInit = "failed to write configuration: %w"

	// Flag descriptions
	MsgFlagVerbose           = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig            = "Config file (default $XDG_CONFIG_HOME/semtparser/config.toml, ./semtparser.toml)"
	MsgFlagLog               = "Operation log: path, .gz/.zst file or s3://bucket/key (default from input.log_file)"
	MsgFlagTable             = "Table CSV the generated code loads (default from input.table_file)"
	MsgFlagFormat            = "Artifact format: script (alias python) or notebook"
	MsgFlagOutput            = "Artifact path (default output.dir/base_file_<timestamp>.py)"
	MsgFlagOutputDir         = "Directory for artifacts with default names"
	MsgFlagOutputFormat      = "Report format: auto, table, text, json or yaml"
	MsgFlagWindow            = "Window: cycle or cycle+exports"
	MsgFlagEmission          = "Emission order: chronological or reconciliation-first"
	MsgFlagExtensionKeep     = "Which duplicate extension survives: first or last"
	MsgFlagUnknownTimestamps = "Sort unparseable timestamps first or last"
	MsgFlagConfigPath        = "Target file (default the user config path)"
	MsgFlagForce             = "Overwrite an existing file"
	MsgFlagPrint             = "Print the configuration instead of writing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/inspect-long.txt
	msgInspectLongRaw string
	MsgInspectLong    = strings.TrimSpace(msgInspectLongRaw)

	//go:embed msgs/inspect-example.txt
	msgInspectExampleRaw string
	MsgInspectExample    = strings.TrimRight(msgInspectExampleRaw, "\n")

	//go:embed msgs/window-long.txt
	msgWindowLongRaw string
	MsgWindowLong    = strings.TrimSpace(msgWindowLongRaw)

	//go:embed msgs/config-init-long.txt
	msgConfigInitLongRaw string
	MsgConfigInitLong    = strings.TrimSpace(msgConfigInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
