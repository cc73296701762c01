package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"timesheet-reporter/internal/domain"
)

const barWidth = 30

// Summary is everything the document template needs for one report run.
type Summary struct {
	GeneratedAt time.Time
	Since       time.Time
	NoData      bool

	TotalHours    float64
	EntryCount    int
	UserCount     int
	ProjectCount  int
	ActivityCount int
	CompanyCount  int
	FirstDate     time.Time
	LastDate      time.Time

	Daily      []DailyRow
	Users      []TotalRow
	Projects   []TotalRow
	Activities []TotalRow
	Recent     []domain.DetailedEntry
}

// BuildSummary enriches and aggregates the raw tables. When any required
// table is empty the summary carries only the NoData flag and every section
// renders its notice instead.
func BuildSummary(t Tables, now time.Time) Summary {
	s := Summary{GeneratedAt: now}
	if !t.HasData() {
		s.NoData = true
		return s
	}

	detailed := Enrich(t)
	if len(detailed) == 0 {
		s.NoData = true
		return s
	}

	s.Daily = DailyTotals(detailed)
	s.Users = UserTotals(detailed)
	s.Projects = ProjectTotals(detailed)
	s.Activities = ActivityTotals(detailed)
	s.Recent = Recent(detailed)

	for _, e := range detailed {
		s.TotalHours += e.Hours
	}
	s.EntryCount = len(detailed)
	s.UserCount = len(t.Users)
	s.ProjectCount = len(t.Projects)
	s.ActivityCount = len(t.ActivityTypes)
	s.CompanyCount = len(t.Companies)
	s.FirstDate = s.Daily[0].Date
	s.LastDate = s.Daily[len(s.Daily)-1].Date

	fillDailyBars(s.Daily)
	fillBars(s.Users)
	fillBars(s.Projects)
	fillBars(s.Activities)
	return s
}

// Render writes the Markdown document for s to w.
func Render(w io.Writer, s Summary) error {
	return documentTmpl.Execute(w, s)
}

// WriteDocument renders the report to report.md under dir and returns the
// written path.
func WriteDocument(dir string, s Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "report.md")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := Render(f, s); err != nil {
		return "", err
	}
	return path, nil
}

func fillBars(rows []TotalRow) {
	var max float64
	for _, r := range rows {
		max = math.Max(max, r.Hours)
	}
	for i := range rows {
		rows[i].Bar = bar(rows[i].Hours, max)
	}
}

func fillDailyBars(rows []DailyRow) {
	var max float64
	for _, r := range rows {
		max = math.Max(max, r.Hours)
	}
	for i := range rows {
		rows[i].Bar = bar(rows[i].Hours, max)
	}
}

// bar renders a proportional text bar; every non-zero value gets at least
// one cell so small groups stay visible.
func bar(v, max float64) string {
	if max <= 0 || v <= 0 {
		return ""
	}
	n := int(math.Round(v / max * barWidth))
	if n < 1 {
		n = 1
	}
	return strings.Repeat("#", n)
}

var documentTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"hours": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
}).Parse(`# Timesheet Report

_Generated {{date .GeneratedAt}}._

## Executive Summary

{{if .NoData -}}
No timesheet data is available for this reporting period. Either no time
entries have been recorded yet or the data source could not be reached; see
the query status files for details.
{{- else -}}
Between {{date .FirstDate}} and {{date .LastDate}}, {{.UserCount}} users logged
{{hours .TotalHours}} hours across {{.ProjectCount}} projects in
{{.EntryCount}} time entries. Work spans {{.ActivityCount}} activity types
for {{.CompanyCount}} companies.
{{- end}}

## Data Overview

{{if .NoData -}}
_No data available._
{{- else -}}
| Metric | Value |
| --- | ---: |
| Time entries | {{.EntryCount}} |
| Total hours | {{hours .TotalHours}} |
| Users | {{.UserCount}} |
| Projects | {{.ProjectCount}} |
| Activity types | {{.ActivityCount}} |
| Companies | {{.CompanyCount}} |
| First entry | {{date .FirstDate}} |
| Last entry | {{date .LastDate}} |
{{- end}}

## Time Logging Trend

{{if .NoData -}}
_No data available._
{{- else -}}
| Date | Hours | Entries | |
| --- | ---: | ---: | --- |
{{range .Daily -}}
| {{date .Date}} | {{hours .Hours}} | {{.Entries}} | {{.Bar}} |
{{end -}}
{{- end}}

## User Performance

{{if .NoData -}}
_No data available._
{{- else -}}
Top {{len .Users}} users by total hours.

| User | Hours | Entries | |
| --- | ---: | ---: | --- |
{{range .Users -}}
| {{.Label}} | {{hours .Hours}} | {{.Entries}} | {{.Bar}} |
{{end -}}
{{- end}}

## Project Breakdown

{{if .NoData -}}
_No data available._
{{- else -}}
Top {{len .Projects}} projects by total hours.

| Project | Hours | Entries | |
| --- | ---: | ---: | --- |
{{range .Projects -}}
| {{.Label}} | {{hours .Hours}} | {{.Entries}} | {{.Bar}} |
{{end -}}
{{- end}}

## Activity Breakdown

{{if .NoData -}}
_No data available._
{{- else -}}
| Activity | Hours | Entries | |
| --- | ---: | ---: | --- |
{{range .Activities -}}
| {{.Label}} | {{hours .Hours}} | {{.Entries}} | {{.Bar}} |
{{end -}}
{{- end}}

## Recent Entries

{{if .NoData -}}
_No data available._
{{- else -}}
| Date | User | Project | Activity | Hours | Description |
| --- | --- | --- | --- | ---: | --- |
{{range .Recent -}}
| {{date .EntryDate}} | {{.UserName}} | {{.ProjectTitle}} | {{.ActivityTitle}} | {{hours .Hours}} | {{.Description}} |
{{end -}}
{{- end}}
`))
