package daterange_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet-reporter/internal/daterange"
	"timesheet-reporter/internal/domain"
)

// Reference date: 2024-03-15 is a Friday.
var now = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func TestResolveKeywords(t *testing.T) {
	tests := []struct {
		keyword   string
		wantStart string
		wantEnd   string
	}{
		{daterange.Today, "2024-03-15", "2024-03-15"},
		{daterange.Yesterday, "2024-03-14", "2024-03-14"},
		{daterange.ThisWeek, "2024-03-11", "2024-03-17"},
		{daterange.LastWeek, "2024-03-04", "2024-03-10"},
		{daterange.ThisMonth, "2024-03-01", "2024-03-31"},
		{daterange.LastMonth, "2024-02-01", "2024-02-29"},
		{daterange.TillDate, "1970-01-01", "2024-03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			r, err := daterange.Resolve(tt.keyword, "", "", now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.StartString())
			assert.Equal(t, tt.wantEnd, r.EndString())
		})
	}
}

func TestResolveOnSunday(t *testing.T) {
	// 2024-03-17 is a Sunday and must still belong to the 03-11..03-17 week.
	sunday := time.Date(2024, 3, 17, 23, 0, 0, 0, time.UTC)
	r, err := daterange.Resolve(daterange.ThisWeek, "", "", sunday)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", r.StartString())
	assert.Equal(t, "2024-03-17", r.EndString())

	r, err = daterange.Resolve(daterange.LastWeek, "", "", sunday)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", r.StartString())
	assert.Equal(t, "2024-03-10", r.EndString())
}

func TestResolveMonthBoundaries(t *testing.T) {
	// January anchors LAST_MONTH into the previous year.
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	r, err := daterange.Resolve(daterange.LastMonth, "", "", jan)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-01", r.StartString())
	assert.Equal(t, "2023-12-31", r.EndString())
}

func TestResolveOverrides(t *testing.T) {
	// Both overrides replace the keyword range entirely.
	r, err := daterange.Resolve(daterange.ThisWeek, "2024-01-01", "2024-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", r.StartString())
	assert.Equal(t, "2024-01-31", r.EndString())

	// A single override replaces only its own side.
	r, err = daterange.Resolve(daterange.ThisWeek, "2024-03-01", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", r.StartString())
	assert.Equal(t, "2024-03-17", r.EndString())

	r, err = daterange.Resolve(daterange.Yesterday, "", "2024-03-20", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-14", r.StartString())
	assert.Equal(t, "2024-03-20", r.EndString())
}

func TestResolveUnknownKeyword(t *testing.T) {
	_, err := daterange.Resolve("FORTNIGHT", "", "", now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	// Unknown keyword with a partial override pair is still an error.
	_, err = daterange.Resolve("FORTNIGHT", "2024-03-01", "", now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	// A full override pair rescues an unknown keyword.
	r, err := daterange.Resolve("FORTNIGHT", "2024-03-01", "2024-03-14", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", r.StartString())
	assert.Equal(t, "2024-03-14", r.EndString())
}

func TestResolveRejectsInvertedRange(t *testing.T) {
	_, err := daterange.Resolve(daterange.Today, "2024-03-20", "2024-03-01", now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestResolveRejectsMalformedOverride(t *testing.T) {
	_, err := daterange.Resolve(daterange.Today, "15/03/2024", "", now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
