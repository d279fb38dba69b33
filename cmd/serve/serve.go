// Package serve runs the complaint classifier web form
package serve

import (
	"os"
	"os/signal"
	"syscall"

	"fjacquet/complaint-classifier/cmd/root"
	"fjacquet/complaint-classifier/internal/classifyerror"
	"fjacquet/complaint-classifier/internal/config"
	"fjacquet/complaint-classifier/internal/logging"

	"github.com/spf13/cobra"
)

var (
	host string
	port int
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the complaint classification web form",
	Long: `Serve the single-page web form where a complaint can be typed and classified.
The Gemini API key is resolved before the server starts; without it the command exits.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "Interface to listen on (default from config)")
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config, 8501)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := root.NewContainer(ctx)
	if err != nil {
		if classifyerror.IsConfigurationError(err) {
			root.Log.WithError(err).Error("Cannot start web form")
		}
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to release resources")
		}
	}()

	root.Log.Info("Serving complaint classifier", logging.F(logging.FieldAddress, cfg.Address()))
	return c.NewServer().Run(ctx)
}
