package cmd

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/tower/api"
	"github.com/kilianp07/tower/app"
	"github.com/kilianp07/tower/infra/logger"
	"github.com/kilianp07/tower/infra/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the schedule over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	svc, err := app.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer closeService(svc)

	g, ctx := errgroup.WithContext(cmd.Context())
	svc.Start(ctx)
	srv := api.New(svc, cfg.API, api.WithLogger(logger.New("api")))
	g.Go(func() error { return srv.Run(ctx) })
	if cfg.Metrics.Listen != "" && cfg.Metrics.Listen != cfg.API.Listen {
		g.Go(func() error { return metrics.Serve(ctx, cfg.Metrics.Listen, logger.New("metrics")) })
	}
	return g.Wait()
}
