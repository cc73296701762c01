package app

import (
	"context"
	"log/slog"
	"time"

	"timesheet-reporter/internal/adapter/csvfile"
	"timesheet-reporter/internal/adapter/postgres"
	"timesheet-reporter/internal/adapter/supabase"
	"timesheet-reporter/internal/config"
	"timesheet-reporter/internal/usecase"
)

// ExportJob wires the export use case to its adapters and owns the
// connection pool cleanup.
type ExportJob struct {
	UC    *usecase.ExportUseCase
	close func()
}

// NewExport validates the DSN, opens the database connection and builds the
// export use case.
func NewExport(ctx context.Context, log *slog.Logger, cfg config.Config) (*ExportJob, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	source, err := postgres.NewSource(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	uc := &usecase.ExportUseCase{
		Log:    log,
		Source: source,
		Writer: &csvfile.Writer{Dir: cfg.ExportDir, Log: log},
	}
	return &ExportJob{UC: uc, close: source.Close}, nil
}

// Close releases the export job's database pool.
func (j *ExportJob) Close() { j.close() }

// NewReport builds the report use case over the HTTP data API. No
// connection is opened up front; fetch failures are handled per table.
func NewReport(log *slog.Logger, cfg config.Config, now time.Time) *usecase.ReportUseCase {
	return &usecase.ReportUseCase{
		Log:       log,
		API:       supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, log),
		OutputDir: cfg.ReportDir,
		Since:     now.AddDate(0, 0, -cfg.SinceDays),
	}
}
