package usecase

import (
	"context"
	"errors"
	"log/slog"

	"timesheet-reporter/internal/daterange"
	"timesheet-reporter/internal/ports"
)

// ExportUseCase coordinates the export job: one query, one artifact.
type ExportUseCase struct {
	Log    *slog.Logger
	Source ports.EntrySource
	Writer ports.ArtifactWriter
}

// Result reports what a run produced.
type Result struct {
	Path   string
	Rows   int
	NoData bool
}

// Run fetches the rows matching the project set and range, then writes the
// artifact. Any fetch error is fatal; no partial file is written.
func (uc *ExportUseCase) Run(ctx context.Context, projects []string, rng daterange.Range, filter string) (Result, error) {
	if uc.Source == nil || uc.Writer == nil {
		return Result{}, errors.New("usecase not initialized: missing dependencies")
	}
	uc.Log.Info("exporting time entries",
		slog.Int("projects", len(projects)),
		slog.String("filter", filter),
		slog.Time("from", rng.Start), slog.Time("to", rng.End))

	rows, err := uc.Source.FetchExportRows(ctx, projects, rng)
	if err != nil {
		return Result{}, err
	}

	if len(rows) == 0 {
		path, err := uc.Writer.WriteNoData(rng, filter)
		if err != nil {
			return Result{}, err
		}
		return Result{Path: path, NoData: true}, nil
	}

	path, err := uc.Writer.WriteRows(rows, rng, filter)
	if err != nil {
		return Result{}, err
	}
	uc.Log.Info("export completed", slog.String("path", path), slog.Int("rows", len(rows)))
	return Result{Path: path, Rows: len(rows)}, nil
}
