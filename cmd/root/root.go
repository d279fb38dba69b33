// Package root contains the root command for the application
package root

import (
	"context"

	"fjacquet/complaint-classifier/internal/config"
	"fjacquet/complaint-classifier/internal/container"
	"fjacquet/complaint-classifier/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// ConfigFile overrides the config.yaml search when set
	ConfigFile string

	// AppConfig is loaded once by the persistent pre-run
	AppConfig *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "complaint-classifier",
		Short: "Classify customer complaints into categories using a Gemini model.",
		Long: `complaint-classifier sends free-text customer complaints to a Gemini model
with a fixed prompt and reports the category it answers with.
It serves a single-page web form, classifies one complaint from the command line,
or classifies a whole CSV file.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to complaint-classifier!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			Log = config.ConfigureLoggingFromConfig(cfg)
			return nil
		},
		SilenceUsage: true,
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default: search ./config.yaml, .complaint-classifier/, $HOME/.complaint-classifier/)")
}

// LoadConfig returns the application configuration, loading it on first use.
func LoadConfig() (*config.Config, error) {
	if AppConfig != nil {
		return AppConfig, nil
	}
	cfg, err := config.InitializeConfigWithFile(ConfigFile)
	if err != nil {
		return nil, err
	}
	AppConfig = cfg
	return cfg, nil
}

// NewContainer wires the application with the shared logger.
// A missing credential surfaces as *classifyerror.ConfigurationError.
func NewContainer(ctx context.Context, opts ...container.Option) (*container.Container, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	opts = append([]container.Option{container.WithLogger(Log)}, opts...)
	return container.NewContainer(ctx, cfg, opts...)
}
