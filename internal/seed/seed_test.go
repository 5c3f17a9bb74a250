package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simmons/punch/internal/models"
	"github.com/simmons/punch/internal/timeutil"
)

var testToday = models.Date{Year: 2026, Month: time.August, Day: 26}

func TestEvents_Deterministic(t *testing.T) {
	a, err := Events(testToday, time.UTC, DefaultSeed)
	require.NoError(t, err)
	b, err := Events(testToday, time.UTC, DefaultSeed)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	require.NotEmpty(t, a)
}

func TestEvents_WellFormedHistory(t *testing.T) {
	events, err := Events(testToday, time.UTC, DefaultSeed)
	require.NoError(t, err)
	require.True(t, len(events)%2 == 0)

	windowStart := timeutil.MondayOnOrBefore(testToday.AddDays(-startDaysInPast))
	var prev time.Time
	for i, e := range events {
		// Strict in/out alternation, so reconstruction sees no anomalies.
		if i%2 == 0 {
			assert.Equal(t, models.EventIn, e.Type)
		} else {
			assert.Equal(t, models.EventOut, e.Type)
		}

		assert.True(t, e.Clock.After(prev), "event %d not after its predecessor", i)
		prev = e.Clock

		day := models.DateOf(e.Clock)
		assert.False(t, day.Before(windowStart))
		assert.True(t, day.Before(testToday), "seeded history must end before today")
	}
}

func TestEvents_WeekdaysReachMinimum(t *testing.T) {
	events, err := Events(testToday, time.UTC, DefaultSeed)
	require.NoError(t, err)

	perDay := map[models.Date]time.Duration{}
	for i := 0; i+1 < len(events); i += 2 {
		day := models.DateOf(events[i].Clock)
		perDay[day] += events[i+1].Clock.Sub(events[i].Clock)
	}

	for day, total := range perDay {
		wd := day.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		assert.GreaterOrEqual(t, total, time.Duration(minTimePerDaySec)*time.Second,
			"weekday %s under minimum", day)
	}
}

func TestEvents_DifferentSeedsDiffer(t *testing.T) {
	a, err := Events(testToday, time.UTC, 1)
	require.NoError(t, err)
	b, err := Events(testToday, time.UTC, 2)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
