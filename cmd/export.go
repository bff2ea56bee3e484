package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kilianp07/tower/app"
	"github.com/kilianp07/tower/core/scenario"
	"github.com/kilianp07/tower/core/scheduler"
	"github.com/kilianp07/tower/infra/blob"
	"github.com/kilianp07/tower/pkg/export"
)

var (
	exportFormat string
	exportOut    string
	exportOps    string
	exportS3     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the flight table as CSV or JSON",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file, stdout when empty")
	exportCmd.Flags().StringVar(&exportOps, "ops", "", "replay script applied before exporting")
	exportCmd.Flags().BoolVar(&exportS3, "s3", false, "upload to the configured export bucket")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
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

	ctx := cmd.Context()
	if exportOps != "" {
		script, err := scenario.LoadScript(exportOps)
		if err != nil {
			return fmt.Errorf("load script: %w", err)
		}
		if _, err := script.Run(ctx, svc); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, svc.Flights(scheduler.Filter{})); err != nil {
		return fmt.Errorf("encode flights: %w", err)
	}

	if exportS3 {
		up, err := blob.New(ctx, cfg.Export)
		if err != nil {
			return err
		}
		name := exportOut
		if name == "" {
			name = "flights." + string(format)
		}
		loc, err := up.Upload(ctx, filepath.Base(name), bytes.NewReader(buf.Bytes()), format.ContentType())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s\n", loc)
		return nil
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		fh, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer fh.Close()
		w = fh
	}
	_, err = w.Write(buf.Bytes())
	return err
}
