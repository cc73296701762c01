// Package daterange maps named date-filter keywords to concrete inclusive
// calendar ranges anchored to the invocation date.
package daterange

import (
	"fmt"
	"time"

	"timesheet-reporter/internal/domain"
)

// Keywords understood by Resolve.
const (
	Today     = "TODAY"
	Yesterday = "YESTERDAY"
	ThisWeek  = "THIS_WEEK"
	LastWeek  = "LAST_WEEK"
	ThisMonth = "THIS_MONTH"
	LastMonth = "LAST_MONTH"
	TillDate  = "TILL_DATE"
)

const dateLayout = "2006-01-02"

// Range is an inclusive [Start, End] pair of calendar dates (midnight UTC).
type Range struct {
	Start time.Time
	End   time.Time
}

// StartString returns the start date formatted as YYYY-MM-DD.
func (r Range) StartString() string { return r.Start.Format(dateLayout) }

// EndString returns the end date formatted as YYYY-MM-DD.
func (r Range) EndString() string { return r.End.Format(dateLayout) }

// Resolve maps keyword to a concrete range relative to now. Non-empty
// startOverride/endOverride (YYYY-MM-DD) replace the keyword-derived bound
// independently per side. An unknown keyword is an error unless both
// overrides are supplied.
func Resolve(keyword, startOverride, endOverride string, now time.Time) (Range, error) {
	today := midnight(now)

	var r Range
	switch keyword {
	case Today:
		r = Range{Start: today, End: today}
	case Yesterday:
		y := today.AddDate(0, 0, -1)
		r = Range{Start: y, End: y}
	case ThisWeek:
		r = weekOf(today)
	case LastWeek:
		r = weekOf(today.AddDate(0, 0, -7))
	case ThisMonth:
		r = monthOf(today)
	case LastMonth:
		r = monthOf(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
	case TillDate:
		r = Range{Start: time.Unix(0, 0).UTC(), End: today}
	default:
		if startOverride == "" || endOverride == "" {
			return Range{}, fmt.Errorf("%w: unknown date filter %q and no explicit start/end pair", domain.ErrConfiguration, keyword)
		}
	}

	if startOverride != "" {
		d, err := time.Parse(dateLayout, startOverride)
		if err != nil {
			return Range{}, fmt.Errorf("%w: invalid start date %q: expected YYYY-MM-DD", domain.ErrConfiguration, startOverride)
		}
		r.Start = d
	}
	if endOverride != "" {
		d, err := time.Parse(dateLayout, endOverride)
		if err != nil {
			return Range{}, fmt.Errorf("%w: invalid end date %q: expected YYYY-MM-DD", domain.ErrConfiguration, endOverride)
		}
		r.End = d
	}
	if r.End.Before(r.Start) {
		return Range{}, fmt.Errorf("%w: end date %s precedes start date %s", domain.ErrConfiguration, r.EndString(), r.StartString())
	}
	return r, nil
}

// weekOf returns the Monday..Sunday range containing d.
func weekOf(d time.Time) Range {
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the week
	}
	monday := d.AddDate(0, 0, -(wd - 1))
	return Range{Start: monday, End: monday.AddDate(0, 0, 6)}
}

// monthOf returns the first..last day range of the month containing d.
func monthOf(d time.Time) Range {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: first, End: first.AddDate(0, 1, -1)}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
