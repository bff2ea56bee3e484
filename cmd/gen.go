package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/core/scenario"
)

var genOut string

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a stress scenario with feasible rotations",
	RunE:  runGen,
}

func init() {
	genCmd.Flags().StringVarP(&genOut, "out", "o", "scenario.json", "output file (.json or .yaml)")
	genCmd.Flags().Int("airports", 0, "number of airports")
	genCmd.Flags().Int("aircraft", 0, "number of aircraft")
	genCmd.Flags().Int("legs", 0, "legs per aircraft")
	genCmd.Flags().Int64("mtt", 0, "minimum turnaround time in minutes")
	genCmd.Flags().Int64("seed", 0, "random seed")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	gc := cfg.Generator
	flags := cmd.Flags()
	if flags.Changed("airports") {
		gc.Airports, _ = flags.GetInt("airports")
	}
	if flags.Changed("aircraft") {
		gc.Aircraft, _ = flags.GetInt("aircraft")
	}
	if flags.Changed("legs") {
		gc.Legs, _ = flags.GetInt("legs")
	}
	if flags.Changed("mtt") {
		mtt, _ := flags.GetInt64("mtt")
		gc.MTT = model.Minute(mtt)
	}
	if flags.Changed("seed") {
		gc.Seed, _ = flags.GetInt64("seed")
	}
	gc.SetDefaults()
	if err := gc.Validate(); err != nil {
		return err
	}

	f := scenario.Generate(gc)
	if err := scenario.Save(genOut, f); err != nil {
		return fmt.Errorf("save scenario: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d flights on %d aircraft across %d airports to %s\n",
		len(f.Flights), len(f.Aircraft), len(f.Airports), genOut)
	return nil
}
