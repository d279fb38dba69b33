// Package configcmd prints the effective configuration
package configcmd

import (
	"fmt"

	"fjacquet/complaint-classifier/cmd/root"
	"fjacquet/complaint-classifier/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, config file and CLASSIFIER_* environment
variables are applied, and where the Gemini API key would be taken from.
The API key itself is never printed.`,
	RunE: configFunc,
}

func configFunc(cmd *cobra.Command, args []string) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	w := cmd.OutOrStdout()
	_, _ = w.Write(out)

	if _, source, err := config.ResolveAPIKey(cfg.Secrets.File, root.Log); err != nil {
		_, _ = fmt.Fprintln(w, "# api key: not found")
	} else {
		_, _ = fmt.Fprintf(w, "# api key: found (%s)\n", source)
	}
	return nil
}
