package main

import (
	"time"

	"github.com/spf13/cobra"

	"timesheet-reporter/internal/app"
	"timesheet-reporter/internal/config"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the timesheet summary document",
	Long: `Report fetches the timesheet tables through the SUPABASE_URL data
API and renders report.md plus the query_status.txt/error_log.txt side
channel under REPORT_DIR. Per-table fetch failures degrade the affected
sections instead of failing the run.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	uc := app.NewReport(logger, cfg, time.Now().UTC())
	_, err = uc.Run(cmd.Context())
	return err
}
