//go:build e2e

package e2e

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"timesheet-reporter/internal/adapter/csvfile"
	"timesheet-reporter/internal/adapter/postgres"
	"timesheet-reporter/internal/daterange"
	"timesheet-reporter/internal/migrate"
	"timesheet-reporter/internal/usecase"
)

const (
	companyID   = "10000000-0000-0000-0000-000000000001"
	projectID   = "20000000-0000-0000-0000-000000000001"
	otherProjID = "20000000-0000-0000-0000-000000000002"
	userID      = "30000000-0000-0000-0000-000000000001"
	activityID  = "40000000-0000-0000-0000-000000000001"
)

func TestExportRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "pass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(90 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://test:pass@%s:%s/testdb", host, port.Port())

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	require.NoError(t, migrate.Run(ctx, dsn, logger))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	seed(ctx, t, pool)

	source, err := postgres.NewSource(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(source.Close)

	rng, err := daterange.Resolve(daterange.Today, "2024-03-04", "2024-03-10", time.Now().UTC())
	require.NoError(t, err)

	uc := &usecase.ExportUseCase{
		Log:    logger,
		Source: source,
		Writer: &csvfile.Writer{Dir: t.TempDir(), Log: logger},
	}

	res, err := uc.Run(ctx, []string{"Coerco"}, rng, "LAST_WEEK")
	require.NoError(t, err)
	require.False(t, res.NoData)

	// Round-trip: the CSV row count must equal the count of rows matching
	// the same predicate in the database.
	var want int
	err = pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM time_entries te
JOIN projects p ON p.id = te.project_id
WHERE p.title = ANY($1)
  AND te.entry_date BETWEEN $2 AND $3
  AND te.deleted_at IS NULL`,
		[]string{"Coerco"}, rng.Start, rng.End).Scan(&want)
	require.NoError(t, err)
	require.Equal(t, want, res.Rows)
	require.Equal(t, 3, want) // out-of-range, wrong-project and soft-deleted rows excluded

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, want+1) // header + rows

	// Stored duration 90 minutes and a 2h start/end span both land as hours;
	// an entry with neither a duration nor times exports as zero hours.
	assert.Equal(t, "1.50", records[1][5])
	assert.Equal(t, "2.00", records[2][5])
	assert.Equal(t, "0.00", records[3][5])
	assert.Equal(t, "Ada Lovelace", records[1][2])
	assert.Equal(t, "Development", records[1][3])

	// Idempotence: a second run regenerates the same artifact.
	res2, err := uc.Run(ctx, []string{"Coerco"}, rng, "LAST_WEEK")
	require.NoError(t, err)
	assert.Equal(t, res.Path, res2.Path)
	assert.Equal(t, res.Rows, res2.Rows)
}

func seed(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(ctx, `INSERT INTO companies (id, name) VALUES ($1, 'Acme')`, companyID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO projects (id, title, company_id) VALUES ($1, 'Coerco', $2), ($3, 'Other Project', NULL)`,
		projectID, companyID, otherProjID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO users (id, first_name, last_name) VALUES ($1, 'Ada', 'Lovelace')`, userID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO activity_types (id, title) VALUES ($1, 'Development')`, activityID)
	require.NoError(t, err)

	type entry struct {
		id       string
		project  string
		date     string
		duration float64
		span     bool
		deleted  bool
	}
	entries := []entry{
		// In range, stored duration 90 minutes.
		{id: "50000000-0000-0000-0000-000000000001", project: projectID, date: "2024-03-05", duration: 90},
		// In range, zero duration, 2h start/end span.
		{id: "50000000-0000-0000-0000-000000000002", project: projectID, date: "2024-03-06", span: true},
		// In range, zero duration and no start/end times.
		{id: "50000000-0000-0000-0000-000000000006", project: projectID, date: "2024-03-07"},
		// Out of range.
		{id: "50000000-0000-0000-0000-000000000003", project: projectID, date: "2024-03-20", duration: 60},
		// Wrong project.
		{id: "50000000-0000-0000-0000-000000000004", project: otherProjID, date: "2024-03-05", duration: 60},
		// Soft-deleted.
		{id: "50000000-0000-0000-0000-000000000005", project: projectID, date: "2024-03-05", duration: 60, deleted: true},
	}
	for _, e := range entries {
		var start, end, deleted any
		if e.span {
			start = time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
			end = time.Date(2024, 3, 6, 11, 0, 0, 0, time.UTC)
		}
		if e.deleted {
			deleted = time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
		}
		_, err := pool.Exec(ctx, `
INSERT INTO time_entries (id, project_id, user_id, activity_type_id, entry_date, start_time, end_time, duration, description, deleted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'seeded entry', $9)`,
			e.id, e.project, userID, activityID, e.date, start, end, e.duration, deleted)
		require.NoError(t, err)
	}
}
