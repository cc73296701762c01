package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"timesheet-reporter/internal/daterange"
	"timesheet-reporter/internal/domain"
)

// Source implements ports.EntrySource over a direct Postgres connection.
type Source struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewSource opens a connection pool and verifies it with a short ping.
func NewSource(ctx context.Context, dsn string, log *slog.Logger) (*Source, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres DSN is required", domain.ErrConnection)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(c); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %v", domain.ErrConnection, err)
	}
	return &Source{pool: pool, log: log}, nil
}

// FetchExportRows runs the single parameterized export query: project names
// via IN, entry dates via BETWEEN, soft-deleted rows excluded. The stored
// duration is minutes when positive; otherwise hours come from end-start.
func (s *Source) FetchExportRows(ctx context.Context, projects []string, rng daterange.Range) ([]domain.ExportRow, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	q := builder.Select(
		"te.entry_date",
		"p.title AS project_name",
		"trim(coalesce(u.first_name, '') || ' ' || coalesce(u.last_name, '')) AS user_name",
		"coalesce(act.title, '') AS focus_area",
		"coalesce(te.description, '') AS description",
		`COALESCE(CASE WHEN te.duration > 0 THEN te.duration / 60.0
               ELSE EXTRACT(EPOCH FROM (te.end_time - te.start_time)) / 3600.0
          END, 0) AS hours`,
	).
		From("time_entries te").
		Join("projects p ON p.id = te.project_id").
		LeftJoin("users u ON u.id = te.user_id").
		LeftJoin("activity_types act ON act.id = te.activity_type_id").
		Where(sq.Eq{"p.title": projects}).
		Where(sq.Expr("te.entry_date BETWEEN ? AND ?", rng.Start, rng.End)).
		Where("te.deleted_at IS NULL").
		OrderBy("project_name", "user_name", "focus_area", "te.entry_date")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: build export query: %v", domain.ErrQuery, err)
	}
	s.log.Debug("running export query", slog.Int("projects", len(projects)),
		slog.Time("from", rng.Start), slog.Time("to", rng.End))

	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuery, err)
	}
	defer rows.Close()

	var out []domain.ExportRow
	for rows.Next() {
		var r domain.ExportRow
		if err := rows.Scan(&r.EntryDate, &r.ProjectName, &r.UserName, &r.FocusArea, &r.Description, &r.Hours); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", domain.ErrQuery, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuery, err)
	}
	s.log.Info("export query completed", slog.Int("rows", len(out)))
	return out, nil
}

// Close releases the underlying pool.
func (s *Source) Close() { s.pool.Close() }
