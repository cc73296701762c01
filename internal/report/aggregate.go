package report

import (
	"sort"
	"time"

	"timesheet-reporter/internal/domain"
)

// Truncation limits for the top-N summary views.
const (
	topUsers      = 10
	topProjects   = 15
	recentEntries = 20
)

// TotalRow is one group in a per-label summary.
type TotalRow struct {
	Label   string
	Hours   float64
	Entries int
	Bar     string
}

// DailyRow is one day in the trend summary.
type DailyRow struct {
	Date    time.Time
	Hours   float64
	Entries int
	Bar     string
}

// DailyTotals groups entries by calendar date, ascending.
func DailyTotals(entries []domain.DetailedEntry) []DailyRow {
	idx := make(map[time.Time]int)
	var out []DailyRow
	for _, e := range entries {
		i, ok := idx[e.EntryDate]
		if !ok {
			i = len(out)
			idx[e.EntryDate] = i
			out = append(out, DailyRow{Date: e.EntryDate})
		}
		out[i].Hours += e.Hours
		out[i].Entries++
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// UserTotals returns the ten users with the highest total hours.
func UserTotals(entries []domain.DetailedEntry) []TotalRow {
	return topN(totalsBy(entries, func(e domain.DetailedEntry) string { return e.UserName }), topUsers)
}

// ProjectTotals returns the fifteen projects with the highest total hours.
func ProjectTotals(entries []domain.DetailedEntry) []TotalRow {
	return topN(totalsBy(entries, func(e domain.DetailedEntry) string { return e.ProjectTitle }), topProjects)
}

// ActivityTotals returns every activity type, highest total first.
func ActivityTotals(entries []domain.DetailedEntry) []TotalRow {
	return topN(totalsBy(entries, func(e domain.DetailedEntry) string { return e.ActivityTitle }), 0)
}

// Recent returns the most recent entries, newest first: entry date, then
// start time, ties kept in fetch order.
func Recent(entries []domain.DetailedEntry) []domain.DetailedEntry {
	out := make([]domain.DetailedEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.After(out[j].EntryDate)
		}
		si, sj := out[i].StartTime, out[j].StartTime
		if si != nil && sj != nil {
			return si.After(*sj)
		}
		return si != nil && sj == nil
	})
	if len(out) > recentEntries {
		out = out[:recentEntries]
	}
	return out
}

// totalsBy accumulates hours per label in first-seen order so the later
// stable sort breaks ties by original row order.
func totalsBy(entries []domain.DetailedEntry, key func(domain.DetailedEntry) string) []TotalRow {
	idx := make(map[string]int)
	var out []TotalRow
	for _, e := range entries {
		label := key(e)
		i, ok := idx[label]
		if !ok {
			i = len(out)
			idx[label] = i
			out = append(out, TotalRow{Label: label})
		}
		out[i].Hours += e.Hours
		out[i].Entries++
	}
	return out
}

// topN stable-sorts descending by hours and truncates to n when n > 0.
func topN(rows []TotalRow, n int) []TotalRow {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Hours > rows[j].Hours })
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
