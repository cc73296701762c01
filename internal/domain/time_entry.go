package domain

import "time"

// TimeEntry represents one recorded work interval in the domain.
type TimeEntry struct {
	ID              string
	ProjectID       *string
	UserID          *string
	ActivityTypeID  *string
	EntryDate       time.Time // calendar date, midnight UTC
	StartTime       *time.Time
	EndTime         *time.Time
	DurationMinutes float64 // raw stored value; zero means "derive from start/end"
	Description     string
	DeletedAt       *time.Time
}

// DetailedEntry is a TimeEntry enriched with its derived duration in hours
// and the display labels resolved from the lookup tables.
type DetailedEntry struct {
	TimeEntry
	Hours         float64
	UserName      string
	ProjectTitle  string
	ActivityTitle string
	CompanyName   string
}

// ExportRow is one line of the export artifact, shaped by the export query.
type ExportRow struct {
	EntryDate   time.Time
	ProjectName string
	UserName    string
	FocusArea   string
	Description string
	Hours       float64
}
