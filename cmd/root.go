// Package cmd wires the tower command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/tower/app"
	"github.com/kilianp07/tower/config"
	"github.com/kilianp07/tower/infra/logger"
)

var (
	cfgPath      string
	scenarioPath string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:           "tower",
	Short:         "Aircraft rotation assignment, propagation and repair engine",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario file, overrides scenario.path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides log.level")
}

// Execute runs the CLI until ctx is canceled.
func Execute(ctx context.Context) error { return rootCmd.ExecuteContext(ctx) }

// loadConfig reads the configuration and applies the persistent flags. When
// optional is set a missing file falls back to the defaults.
func loadConfig(optional bool) (*config.Config, error) {
	load := config.Load
	if optional {
		load = config.LoadOptional
	}
	cfg, err := load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if scenarioPath != "" {
		cfg.Scenario.Path = scenarioPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}
