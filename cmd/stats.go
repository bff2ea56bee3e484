package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/tower/app"
	"github.com/kilianp07/tower/internal/shell"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the fleet utilization summary of the scenario",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(true)
		if err != nil {
			return err
		}
		svc, err := app.NewFromConfig(cfg)
		if err != nil {
			return err
		}
		defer closeService(svc)
		_, err = shell.New(svc, nil, cmd.OutOrStdout()).Execute(cmd.Context(), "stats")
		return err
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
