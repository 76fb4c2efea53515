package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/smstxn/internal/buildinfo"
	"github.com/cleared-dev/smstxn/internal/config"
	"github.com/cleared-dev/smstxn/internal/engine"
	"github.com/cleared-dev/smstxn/internal/logger"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
	offline    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "smstxn",
		Short:   "Classify SMS notifications and extract transaction details",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.FileName, "config file (defaults apply when missing)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.offline, "offline", false, "skip the merchant index fetch")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newClassifyCommand(opts))
	rootCmd.AddCommand(newExtractCommand(opts))
	rootCmd.AddCommand(newBatchCommand(opts))

	return rootCmd
}

// loadConfig resolves configuration in order: file, environment, flags.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.offline {
		cfg.MerchantIndex.Disabled = true
	}
	return cfg, nil
}

// newEngine loads configuration and builds an engine logging to the command's stderr.
func (o *globalOptions) newEngine(cmd *cobra.Command) (*engine.Engine, zerolog.Logger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.NewConsole(cmd.ErrOrStderr(), cfg.Log.Level)

	eng, err := engine.Build(cmd.Context(), cfg, log)
	if err != nil {
		return nil, log, err
	}
	return eng, log, nil
}
