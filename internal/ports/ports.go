package ports

import (
	"context"
	"time"

	"timesheet-reporter/internal/daterange"
	"timesheet-reporter/internal/domain"
)

// EntrySource fetches export rows from the timesheet database.
type EntrySource interface {
	FetchExportRows(ctx context.Context, projects []string, rng daterange.Range) ([]domain.ExportRow, error)
}

// ArtifactWriter persists the export result to the artifact directory.
type ArtifactWriter interface {
	WriteRows(rows []domain.ExportRow, rng daterange.Range, filter string) (string, error)
	WriteNoData(rng daterange.Range, filter string) (string, error)
}

// TablesAPI fetches the report's raw tables from the HTTP data API. Each
// method maps to one table; callers treat a failure as an empty table.
type TablesAPI interface {
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListActivityTypes(ctx context.Context) ([]domain.ActivityType, error)
	ListTimeEntries(ctx context.Context, since time.Time) ([]domain.TimeEntry, error)
}
