package csvfile

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"timesheet-reporter/internal/daterange"
	"timesheet-reporter/internal/domain"
)

var header = []string{"entry_date", "project_name", "user_name", "focus_area", "description", "hours"}

// Writer implements ports.ArtifactWriter by writing delimited files under
// Dir. Paths are deterministic for a given filter and resolved range.
type Writer struct {
	Dir string
	Log *slog.Logger
}

// WriteRows serializes rows to report_<filter>_<start>_<end>.csv and returns
// the written path. The file is created only after all rows are in hand, so
// a failed run never leaves a partial artifact.
func (w *Writer) WriteRows(rows []domain.ExportRow, rng daterange.Range, filter string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(w.Dir, fileName(filter, rng))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return "", err
	}
	for _, r := range rows {
		rec := []string{
			r.EntryDate.Format("2006-01-02"),
			r.ProjectName,
			r.UserName,
			r.FocusArea,
			r.Description,
			strconv.FormatFloat(r.Hours, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	w.Log.Info("export artifact written", slog.String("path", path), slog.Int("rows", len(rows)))
	return path, nil
}

// WriteNoData leaves a placeholder file so the invoking workflow can tell an
// empty result from a silent failure.
func (w *Writer) WriteNoData(rng daterange.Range, filter string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(w.Dir, "no_data_found.txt")
	msg := fmt.Sprintf("No time entries found for date filter %q between %s and %s.\n",
		filter, rng.StartString(), rng.EndString())
	if err := os.WriteFile(path, []byte(msg), 0o644); err != nil {
		return "", err
	}
	w.Log.Warn("no rows to export", slog.String("path", path))
	return path, nil
}

func fileName(filter string, rng daterange.Range) string {
	slug := strings.ReplaceAll(strings.ToLower(filter), "_", "-")
	return fmt.Sprintf("report_%s_%s_%s.csv", slug, rng.StartString(), rng.EndString())
}
