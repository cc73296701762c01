package domain

import (
	"strings"
	"time"
)

// Project is a lookup row attaching a title and an owning company to entries.
type Project struct {
	ID        string
	Title     string
	CompanyID *string
	DeletedAt *time.Time
}

// User is a lookup row; the display name is composed from first/last name.
type User struct {
	ID        string
	FirstName string
	LastName  string
	DeletedAt *time.Time
}

// DisplayName returns "First Last" with empty parts trimmed away.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Company is a lookup row owning zero or more projects.
type Company struct {
	ID        string
	Name      string
	DeletedAt *time.Time
}

// ActivityType is a lookup row labelling the kind of work of an entry.
type ActivityType struct {
	ID        string
	Title     string
	DeletedAt *time.Time
}
