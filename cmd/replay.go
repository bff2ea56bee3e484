package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kilianp07/tower/app"
	"github.com/kilianp07/tower/core/scenario"
	"github.com/kilianp07/tower/internal/shell"
)

var replayCmd = &cobra.Command{
	Use:   "replay <ops.yaml>",
	Short: "Apply a scripted list of disruptions and print the outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	script, err := scenario.LoadScript(args[0])
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	svc, err := app.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer closeService(svc)
	svc.Start(cmd.Context())

	out := cmd.OutOrStdout()
	results, runErr := script.Run(cmd.Context(), svc)
	for _, r := range results {
		printResult(out, r)
	}
	if runErr != nil {
		return runErr
	}
	_, err = shell.New(svc, nil, out).Execute(cmd.Context(), "stats")
	return err
}

func printResult(w io.Writer, r scenario.Result) {
	switch {
	case r.Outcome != nil:
		fmt.Fprintf(w, "%-40s %d unscheduled, %d delayed\n", r.Op, r.Outcome.Unscheduled, r.Outcome.Delayed)
	case r.Recovery != nil:
		fmt.Fprintf(w, "%-40s %d reassigned, %d still unscheduled\n", r.Op, r.Recovery.Reassigned, r.Recovery.StillUnscheduled)
	}
}
