package semtparser

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/semtparser/internal/version"
	"github.com/arthur-debert/semtparser/pkg/cobrax/topics"
	"github.com/arthur-debert/semtparser/pkg/commands"
	"github.com/arthur-debert/semtparser/pkg/config"
	"github.com/arthur-debert/semtparser/pkg/display"
	"github.com/arthur-debert/semtparser/pkg/logging"
	"github.com/arthur-debert/semtparser/pkg/logsource"
	"github.com/arthur-debert/semtparser/pkg/oplog"
	"github.com/arthur-debert/semtparser/pkg/output/styles"
	"github.com/arthur-debert/semtparser/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// app carries the global flags and the configuration they select. The
// configuration is loaded on first use so that help, version and config init
// still work next to a broken config file.
type app struct {
	verbosity  int
	configFile string
	cfg        *config.Config
}

func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(config.LoadOptions{ConfigFile: a.configFile})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	a.cfg = cfg
	return cfg, nil
}

func (a *app) reader(cfg *config.Config) *logsource.Reader {
	return logsource.NewReader(logsource.Options{S3Config: cfg.S3Config()})
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "semtparser",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf(MsgNoRootCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)

	// Replaced by the topic-aware help command below
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newWindowCmd(a))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help from the embedded markdown files
	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}
		if err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Debug().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// pipelineFlags override the [pipeline] settings for one invocation.
type pipelineFlags struct {
	window            string
	emission          string
	extensionKeep     string
	unknownTimestamps string
}

func (p *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.window, "window", "", MsgFlagWindow)
	cmd.Flags().StringVar(&p.emission, "emission", "", MsgFlagEmission)
	cmd.Flags().StringVar(&p.extensionKeep, "extension-keep", "", MsgFlagExtensionKeep)
	cmd.Flags().StringVar(&p.unknownTimestamps, "unknown-timestamps", "", MsgFlagUnknownTimestamps)

	_ = cmd.RegisterFlagCompletionFunc("window", fixedCompletion("cycle", "cycle+exports"))
	_ = cmd.RegisterFlagCompletionFunc("emission", fixedCompletion("chronological", "reconciliation-first"))
	_ = cmd.RegisterFlagCompletionFunc("extension-keep", fixedCompletion("first", "last"))
	_ = cmd.RegisterFlagCompletionFunc("unknown-timestamps", fixedCompletion("first", "last"))
}

// options applies the flags on top of cfg without modifying it.
func (p *pipelineFlags) options(cfg *config.Config) (oplog.Options, error) {
	c := *cfg
	if p.window != "" {
		c.Pipeline.Window = p.window
	}
	if p.emission != "" {
		c.Pipeline.Emission = p.emission
	}
	if p.extensionKeep != "" {
		c.Pipeline.ExtensionKeep = p.extensionKeep
	}
	if p.unknownTimestamps != "" {
		c.Pipeline.UnknownTimestamps = p.unknownTimestamps
	}
	return c.PipelineOptions()
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		logFile   string
		tableFile string
		format    string
		output    string
		outputDir string
		policy    pipelineFlags
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			opts, err := policy.options(cfg)
			if err != nil {
				return err
			}

			result, err := commands.Generate(cmd.Context(), commands.GenerateOptions{
				Reader:           a.reader(cfg),
				LogFile:          orDefault(logFile, cfg.Input.LogFile),
				TableFile:        orDefault(tableFile, cfg.Input.TableFile),
				Format:           orDefault(format, cfg.Output.Format),
				OutputDir:        orDefault(outputDir, cfg.Output.Dir),
				OutputFile:       output,
				TablePrefix:      cfg.Output.TablePrefix,
				DefaultExport:    cfg.Output.DefaultExport,
				ValidateNotebook: cfg.Output.ValidateNotebook,
				Pipeline:         opts,
				Service:          cfg.EmitService(),
				Version:          version.Version,
			})
			if err != nil {
				return fmt.Errorf(MsgErrGenerate, err)
			}

			for _, w := range result.Warnings {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), styles.Render("Warning", fmt.Sprintf(MsgWarning, w)))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgGenerated,
				result.Path, result.Format, result.Operations, result.DatasetID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&logFile, "log", "l", "", MsgFlagLog)
	cmd.Flags().StringVarP(&tableFile, "table", "t", "", MsgFlagTable)
	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringVar(&outputDir, "output-dir", "", MsgFlagOutputDir)
	policy.register(cmd)

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(config.FormatScript, config.FormatNotebook))

	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		logFile      string
		outputFormat string
		policy       pipelineFlags
	)

	cmd := &cobra.Command{
		Use:     "inspect",
		Short:   MsgInspectShort,
		Long:    MsgInspectLong,
		Example: MsgInspectExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(outputFormat)
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}
			opts, err := policy.options(cfg)
			if err != nil {
				return err
			}

			report, err := commands.Inspect(cmd.Context(), commands.InspectOptions{
				Reader:   a.reader(cfg),
				LogFile:  orDefault(logFile, cfg.Input.LogFile),
				Pipeline: opts,
			})
			if err != nil {
				return fmt.Errorf(MsgErrInspect, err)
			}
			return display.Render(cmd.OutOrStdout(), format, *report)
		},
	}

	cmd.Flags().StringVarP(&logFile, "log", "l", "", MsgFlagLog)
	cmd.Flags().StringVar(&outputFormat, "output-format", "auto", MsgFlagOutputFormat)
	policy.register(cmd)

	_ = cmd.RegisterFlagCompletionFunc("output-format", fixedCompletion("auto", "table", "text", "json", "yaml"))

	return cmd
}

func newWindowCmd(a *app) *cobra.Command {
	var (
		logFile string
		policy  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:     "window",
		Short:   MsgWindowShort,
		Long:    MsgWindowLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			opts, err := policy.options(cfg)
			if err != nil {
				return err
			}

			source := orDefault(logFile, cfg.Input.LogFile)
			w, err := commands.Window(cmd.Context(), commands.WindowOptions{
				Reader:  a.reader(cfg),
				LogFile: source,
				Mode:    opts.Window,
			})
			if err != nil {
				return fmt.Errorf(MsgErrWindow, err)
			}

			if !w.Found {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), styles.Render("Warning", fmt.Sprintf(MsgNoWindow, source)))
				return nil
			}
			out := cmd.OutOrStdout()
			for _, line := range w.Lines {
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&logFile, "log", "l", "", MsgFlagLog)
	cmd.Flags().StringVar(&policy.window, "window", "", MsgFlagWindow)
	_ = cmd.RegisterFlagCompletionFunc("window", fixedCompletion("cycle", "cycle+exports"))

	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		path      string
		force     bool
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Long:  MsgConfigInitLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(commands.GenConfigOptions{
				Path:  path,
				Write: !printOnly,
				Force: force,
			})
			if err != nil {
				return fmt.Errorf(MsgErrConfigInit, err)
			}

			if printOnly {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), result.ConfigContent)
				return nil
			}
			for _, written := range result.FilesWritten {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), styles.Render("Success", fmt.Sprintf(MsgConfigWritten, written)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", MsgFlagConfigPath)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&printOnly, "print", false, MsgFlagPrint)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
