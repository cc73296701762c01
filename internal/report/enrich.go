// Package report turns the raw timesheet tables into the summary document.
// Enrichment and aggregation are pure functions over the input tables so
// they can be tested without a live API.
package report

import (
	"timesheet-reporter/internal/domain"
)

// Placeholder labels substituted when a left-join finds no match, so every
// aggregate group has a non-empty display key.
const (
	UnknownProject  = "Unknown Project"
	UnknownUser     = "Unknown User"
	UnknownActivity = "Unknown Activity"
	UnknownCompany  = "Unknown Company"
)

// Derived durations outside this open interval are considered implausible
// and drop the entry from every aggregate.
const maxPlausibleHours = 24.0

// Tables bundles the five raw tables fetched for one report run.
type Tables struct {
	Companies     []domain.Company
	Projects      []domain.Project
	Users         []domain.User
	ActivityTypes []domain.ActivityType
	TimeEntries   []domain.TimeEntry
}

// HasData reports whether aggregation is worth attempting. Entries,
// projects and users are all required for a meaningful report.
func (t Tables) HasData() bool {
	return len(t.TimeEntries) > 0 && len(t.Projects) > 0 && len(t.Users) > 0
}

// Enrich derives the duration of every entry, discards implausible ones and
// left-joins the lookup tables, substituting placeholders on misses.
func Enrich(t Tables) []domain.DetailedEntry {
	projects := make(map[string]domain.Project, len(t.Projects))
	for _, p := range t.Projects {
		projects[p.ID] = p
	}
	users := make(map[string]domain.User, len(t.Users))
	for _, u := range t.Users {
		users[u.ID] = u
	}
	companies := make(map[string]domain.Company, len(t.Companies))
	for _, c := range t.Companies {
		companies[c.ID] = c
	}
	activities := make(map[string]domain.ActivityType, len(t.ActivityTypes))
	for _, a := range t.ActivityTypes {
		activities[a.ID] = a
	}

	out := make([]domain.DetailedEntry, 0, len(t.TimeEntries))
	for _, e := range t.TimeEntries {
		hours, ok := deriveHours(e)
		if !ok {
			continue
		}
		d := domain.DetailedEntry{
			TimeEntry:     e,
			Hours:         hours,
			UserName:      UnknownUser,
			ProjectTitle:  UnknownProject,
			ActivityTitle: UnknownActivity,
			CompanyName:   UnknownCompany,
		}
		if e.UserID != nil {
			if u, found := users[*e.UserID]; found && u.DisplayName() != "" {
				d.UserName = u.DisplayName()
			}
		}
		if e.ProjectID != nil {
			if p, found := projects[*e.ProjectID]; found {
				d.ProjectTitle = p.Title
				if p.CompanyID != nil {
					if c, foundC := companies[*p.CompanyID]; foundC {
						d.CompanyName = c.Name
					}
				}
			}
		}
		if e.ActivityTypeID != nil {
			if a, found := activities[*e.ActivityTypeID]; found {
				d.ActivityTitle = a.Title
			}
		}
		out = append(out, d)
	}
	return out
}

// deriveHours applies the dual duration rule: a positive stored duration is
// minutes, otherwise the duration comes from the end-start span. The stored
// field's unit is unconfirmed upstream, so both paths are kept as-is.
func deriveHours(e domain.TimeEntry) (float64, bool) {
	var hours float64
	if e.DurationMinutes > 0 {
		hours = e.DurationMinutes / 60.0
	} else if e.StartTime != nil && e.EndTime != nil {
		hours = e.EndTime.Sub(*e.StartTime).Hours()
	}
	if hours <= 0 || hours >= maxPlausibleHours {
		return 0, false
	}
	return hours, true
}
