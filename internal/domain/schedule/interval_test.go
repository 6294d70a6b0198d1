package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		aStart, aEnd   string
		bStart, bEnd   string
		expectsOverlap bool
	}{
		{"disjoint before", "2026-03-01", "2026-03-03", "2026-03-04", "2026-03-06", false},
		{"disjoint after", "2026-03-04", "2026-03-06", "2026-03-01", "2026-03-03", false},
		{"touching endpoints overlap", "2026-03-01", "2026-03-03", "2026-03-03", "2026-03-05", true},
		{"contained", "2026-03-01", "2026-03-10", "2026-03-04", "2026-03-06", true},
		{"containing", "2026-03-04", "2026-03-06", "2026-03-01", "2026-03-10", true},
		{"partial", "2026-03-01", "2026-03-05", "2026-03-04", "2026-03-08", true},
		{"single day inside", "2026-03-01", "2026-03-05", "2026-03-03", "2026-03-03", true},
		{"identical", "2026-03-01", "2026-03-05", "2026-03-01", "2026-03-05", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd))
			assert.Equal(t, tc.expectsOverlap, got)

			// symmetry
			assert.Equal(t, got, Overlaps(day(tc.bStart), day(tc.bEnd), day(tc.aStart), day(tc.aEnd)))
		})
	}
}

func TestClockMinutes(t *testing.T) {
	m, err := ClockMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, m)

	m, err = ClockMinutes("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = ClockMinutes("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, m)

	for _, bad := range []string{"", "9:3", "25:00", "12:60", "noon", "12h30"} {
		_, err := ClockMinutes(bad)
		assert.Error(t, err, bad)
	}
}

func TestWindowsOverlap(t *testing.T) {
	// half-open windows: touching at the boundary is not an overlap
	assert.False(t, WindowsOverlap(540, 600, 600, 660))
	assert.False(t, WindowsOverlap(600, 660, 540, 600))
	assert.True(t, WindowsOverlap(540, 620, 600, 660))
	assert.True(t, WindowsOverlap(540, 660, 560, 580))
}

func TestSameDate(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	a := time.Date(2026, 3, 2, 23, 0, 0, 0, ny)
	b := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, b.AddDate(0, 0, 1)))
}
