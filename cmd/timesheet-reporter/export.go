package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"timesheet-reporter/internal/app"
	"timesheet-reporter/internal/config"
	"timesheet-reporter/internal/daterange"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export time entries to a CSV artifact",
	Long: `Export runs one parameterized query against the timesheet database,
filtered by TARGET_PROJECTS and the DATE_FILTER keyword (or explicit
START_DATE/END_DATE overrides), and writes the result as a CSV file under
EXPORT_DIR. The written path is handed back to the invoking workflow.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		writeFatalError("exports", err)
		return err
	}
	if err := doExport(cmd, cfg); err != nil {
		writeFatalError(cfg.ExportDir, err)
		return err
	}
	return nil
}

func doExport(cmd *cobra.Command, cfg config.Config) error {
	if err := cfg.ValidateExport(); err != nil {
		return err
	}

	rng, err := daterange.Resolve(cfg.DateFilter, cfg.StartDate, cfg.EndDate, time.Now().UTC())
	if err != nil {
		return err
	}
	logger.Info("date range resolved",
		slog.String("filter", cfg.DateFilter),
		slog.String("start", rng.StartString()),
		slog.String("end", rng.EndString()))

	ctx := cmd.Context()
	job, err := app.NewExport(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer job.Close()

	res, err := job.UC.Run(ctx, cfg.Projects(), rng, cfg.DateFilter)
	if err != nil {
		return err
	}
	if res.NoData {
		return emitOutput("no_data", "true")
	}
	return emitOutput("csv_path", res.Path)
}

// writeFatalError leaves a side artifact describing a crashed run so the
// invoking workflow has something to collect beyond the exit code. Best
// effort: a failure to write it must not mask the original error.
func writeFatalError(dir string, cause error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	msg := fmt.Sprintf("Error: %v\n", cause)
	_ = os.WriteFile(filepath.Join(dir, "fatal_error.txt"), []byte(msg), 0o644)
}

// emitOutput hands a named value back to the invoking workflow: appended to
// the GITHUB_OUTPUT file when set, printed to stdout otherwise.
func emitOutput(key, value string) error {
	line := fmt.Sprintf("%s=%s\n", key, value)
	if out := os.Getenv("GITHUB_OUTPUT"); out != "" {
		f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = f.WriteString(line)
		return err
	}
	_, err := fmt.Print(line)
	return err
}
