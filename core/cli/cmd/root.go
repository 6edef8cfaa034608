package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wanderdata/wanderdata/core/cli/internal"
	"github.com/wanderdata/wanderdata/core/config"
	"github.com/wanderdata/wanderdata/core/logger"
)

// version stores the version string, set via SetVersion()
var version = "dev"

// SetVersion sets the version string (called from main.init())
func SetVersion(v string) {
	version = v
}

// GetVersion returns the current version string
func GetVersion() string {
	return version
}

// rootOptions are the flags shared by every subcommand
type rootOptions struct {
	configFile  string
	logLevel    string
	level       int
	verbose     bool
	logTags     string
	logFile     bool
	showVersion bool
}

// NewRootCommand builds the wanderdata command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "wanderdata",
		Short:         "WanderData\nTravel analytics over a fixed SQL catalog",
		SilenceUsage:  true,
		SilenceErrors: true, // Errors are already logged, suppress Cobra's error output
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.configureLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.CloseLogFile()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to the YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: error, warn, info, debug or 1-4 (overrides config file)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging (sets log level to DEBUG)")
	flags.StringVar(&opts.logTags, "log-tags", "", "Filter logs by tags (comma-separated, use -tag to exclude). Overrides WANDERDATA_LOG_TAGS env var")
	flags.BoolVar(&opts.logFile, "log-file", false, "Stream logs to file in /tmp/.wanderdata/logs/")
	rootCmd.Flags().BoolVarP(&opts.showVersion, "version", "v", false, "Print the installed version and exit")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newCatalogCmd(),
		newQueryCmd(opts),
		newClientCmd(),
		newBulkCmd(),
		newExportCmd(opts),
		newCompletionCmd(),
	)
	return rootCmd
}

// Execute builds the command tree and runs it against os.Args
func Execute() error {
	return NewRootCommand().Execute()
}

// newCompletionCmd is a hidden command used by install scripts to generate shell completions
func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "completion [bash|zsh|fish|powershell]",
		Short:        "Generate shell completion script",
		Hidden:       true,
		ValidArgs:    []string{"bash", "zsh", "fish", "powershell"},
		Args:         cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage: true,
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
				return cmd.Root().GenPowerShellCompletion(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}

// configureLogging applies the logging flags before any subcommand runs.
// The config file may lower or raise the level later when no flag is set.
func (o *rootOptions) configureLogging() error {
	if o.logLevel != "" {
		level, ok := logger.ParseLogLevel(o.logLevel)
		if !ok {
			return logger.Tagf("main", "invalid log level '%s'", o.logLevel)
		}
		o.level = level
	}
	logger.SetLogLevel(internal.ResolveLogLevel(o.verbose, o.level, nil))

	tagFilterStr := o.logTags
	if tagFilterStr == "" {
		tagFilterStr = os.Getenv("WANDERDATA_LOG_TAGS")
	}
	if tagFilterStr != "" {
		logger.SetTagFilter(tagFilterStr)
	}

	if o.logFile {
		filePath, err := logger.SetLogFile()
		if err != nil {
			return logger.Tagf("main", "failed to initialize log file: %w", err)
		}
		logger.New("main").Infof("Log file: %s", filePath)
	}
	return nil
}

// loadConfig loads .env files next to the config file, then the config
// itself, and applies the file's log level when no flag overrides it
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configFile != "" {
		LoadEnvFiles(filepath.Dir(o.configFile))
	} else {
		LoadEnvFiles("")
	}

	cfg, err := internal.LoadConfig(o.configFile)
	if err != nil {
		return nil, logger.WithTag("config", err)
	}
	if o.level == 0 && !o.verbose {
		logger.SetLogLevel(internal.ResolveLogLevel(false, 0, cfg))
	}
	return cfg, nil
}

// LoadEnvFiles attempts to load .env files from multiple locations.
// It tries each location in order and stops at the first successful load.
// Priority order:
// 1. From the provided directory (if not empty)
// 2. From the current working directory
// 3. From the directory containing the executable binary
// System environment variables always take precedence over .env file values.
func LoadEnvFiles(fromDir string) {
	envFiles := []string{".env.local", ".env.development", ".env"}

	if fromDir != "" {
		for _, envFile := range envFiles {
			if err := godotenv.Load(filepath.Join(fromDir, envFile)); err == nil {
				return
			}
		}
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			return
		}
	}

	if execPath, err := os.Executable(); err == nil {
		if realPath, err := filepath.EvalSymlinks(execPath); err == nil {
			execPath = realPath
		}
		execDir := filepath.Dir(execPath)
		for _, envFile := range envFiles {
			if err := godotenv.Load(filepath.Join(execDir, envFile)); err == nil {
				return
			}
		}
	}
}
