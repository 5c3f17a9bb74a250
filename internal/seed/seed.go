// Package seed generates a plausible punch-event history for demo and test
// databases: weekday-weighted work sessions with fuzzed start times,
// reproducible from a fixed seed.
package seed

import (
	"math/rand"
	"time"

	"github.com/simmons/punch/internal/models"
	"github.com/simmons/punch/internal/timeutil"
)

const (
	startDaysInPast   = 38
	minSessionSec     = 60 * 60     // 1h
	maxSessionSec     = 60 * 60 * 6 // 6h
	minTimePerDaySec  = 60 * 60 * 7 // 7h
	maxFuzzSec        = 3600
	earliestStartSec  = 60 * 60 * 7 // 7:00am
	weekendWorkChance = 30          // percent
	lastSecondOfDay   = 24*60*60 - 1
)

// DefaultSeed keeps seeded databases reproducible across runs.
const DefaultSeed int64 = 0x74C11DB7

// Events generates alternating in/out punch events from the Monday on or
// before 38 days ago through yesterday, in the given reporting time zone.
// Event IDs are unset; instants are UTC. Conversion of a generated local
// time that falls in a DST gap or repeated hour surfaces as an error.
func Events(today models.Date, loc *time.Location, seed int64) ([]models.Event, error) {
	rng := rand.New(rand.NewSource(seed))

	day := timeutil.MondayOnOrBefore(today.AddDays(-startDaysInPast))

	var events []models.Event
	for ; day.Before(today); day = day.AddDays(1) {
		// Seldom work on weekends.
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			if rng.Intn(100) >= weekendWorkChance {
				continue
			}
		}

		timeToday := 0
		tod := earliestStartSec
		for timeToday < minTimePerDaySec {
			// Fuzz the start time.
			maxFuzz := maxFuzzSec
			if left := lastSecondOfDay - tod; left < maxFuzz {
				maxFuzz = left
			}
			if maxFuzz <= 0 {
				break
			}
			// At least one second, so consecutive punches never share an
			// instant.
			tod += 1 + rng.Intn(maxFuzz)
			start := tod

			// Pick a session length that fits in the rest of the day.
			left := lastSecondOfDay - tod
			if left < 60 {
				break
			}
			maxSession := maxSessionSec
			if left < maxSession {
				maxSession = left
			}
			if maxSession <= minSessionSec {
				break
			}
			length := minSessionSec + rng.Intn(maxSession-minSessionSec)
			tod += length
			end := tod

			in, err := punchAt(day, start, loc, models.EventIn)
			if err != nil {
				return nil, err
			}
			out, err := punchAt(day, end, loc, models.EventOut)
			if err != nil {
				return nil, err
			}
			events = append(events, in, out)

			timeToday += length
		}
	}

	return events, nil
}

// punchAt builds an event at the given local second-of-day.
func punchAt(day models.Date, secondOfDay int, loc *time.Location, typ models.EventType) (models.Event, error) {
	clock, err := timeutil.ToUTC(day, secondOfDay/3600, secondOfDay/60%60, secondOfDay%60, loc)
	if err != nil {
		return models.Event{}, err
	}
	return models.Event{Type: typ, Clock: clock}, nil
}
