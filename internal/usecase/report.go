package usecase

import (
	"context"
	"log/slog"
	"time"

	"timesheet-reporter/internal/ports"
	"timesheet-reporter/internal/report"
)

// ReportUseCase coordinates the report generator: five isolated fetches,
// enrichment, aggregation and one rendered document. A failed fetch leaves
// its table empty instead of aborting the run.
type ReportUseCase struct {
	Log *slog.Logger
	API ports.TablesAPI

	// OutputDir receives report.md plus the status side-channel files.
	OutputDir string
	// Since is the lower bound applied to the time-entry fetch.
	Since time.Time
	// Now anchors the generated-at stamp; zero means time.Now.
	Now func() time.Time
}

// Run always renders a document: fetch failures degrade sections to their
// "no data" notice and are recorded in the side-channel files.
func (uc *ReportUseCase) Run(ctx context.Context) (string, error) {
	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}

	var tables report.Tables
	var fetchErrors []string

	record := func(table string, err error) {
		uc.Log.Error("table fetch failed", slog.String("table", table), slog.String("error", err.Error()))
		fetchErrors = append(fetchErrors, err.Error())
	}

	if companies, err := uc.API.ListCompanies(ctx); err != nil {
		record("companies", err)
	} else {
		tables.Companies = companies
	}
	if projects, err := uc.API.ListProjects(ctx); err != nil {
		record("projects", err)
	} else {
		tables.Projects = projects
	}
	if users, err := uc.API.ListUsers(ctx); err != nil {
		record("users", err)
	} else {
		tables.Users = users
	}
	if activities, err := uc.API.ListActivityTypes(ctx); err != nil {
		record("activity_types", err)
	} else {
		tables.ActivityTypes = activities
	}
	if entries, err := uc.API.ListTimeEntries(ctx, uc.Since); err != nil {
		record("time_entries", err)
	} else {
		tables.TimeEntries = entries
	}

	uc.Log.Info("tables fetched",
		slog.Int("companies", len(tables.Companies)),
		slog.Int("projects", len(tables.Projects)),
		slog.Int("users", len(tables.Users)),
		slog.Int("activity_types", len(tables.ActivityTypes)),
		slog.Int("time_entries", len(tables.TimeEntries)),
		slog.Int("errors", len(fetchErrors)))

	summary := report.BuildSummary(tables, now())
	if summary.NoData {
		uc.Log.Warn("rendering no-data report")
	}

	path, err := report.WriteDocument(uc.OutputDir, summary)
	if err != nil {
		return "", err
	}
	if err := report.WriteStatus(uc.OutputDir, fetchErrors); err != nil {
		return "", err
	}
	uc.Log.Info("report written", slog.String("path", path))
	return path, nil
}
