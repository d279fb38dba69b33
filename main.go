// Package main provides the entry point for the complaint-classifier CLI application.
package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/complaint-classifier/cmd/batch"
	"fjacquet/complaint-classifier/cmd/classify"
	"fjacquet/complaint-classifier/cmd/configcmd"
	"fjacquet/complaint-classifier/cmd/root"
	"fjacquet/complaint-classifier/cmd/serve"
	"fjacquet/complaint-classifier/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load .env silently first (no logging yet)
	config.LoadEnv()

	// 2. Global log level for anything logging before the config is read
	configureLogLevelDirectly()

	// 3. Root command and subcommands
	root.Init()
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(configcmd.Cmd)
}

// configureLogLevelDirectly sets the global logrus level from LOG_LEVEL.
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
