package report

import (
	"sort"

	"github.com/simmons/punch/internal/models"
)

// Buckets holds the calendar allocation of a set of intervals, ordered
// most-recent-first and trimmed to the visible range.
type Buckets struct {
	Days  []models.DayTotal
	Weeks []models.WeekTotal
}

// Aggregate allocates each interval's work time to the day and ISO week of
// the interval's start (an interval is never split across bucket
// boundaries, even when it spans midnight or a week boundary), fills every
// day in [startDay, today] and every week in between with zero-valued
// buckets, trims the daily series to the current ISO week, and reverses
// both series to most-recent-first.
func Aggregate(intervals []models.Interval, startDay, today models.Date) Buckets {
	dayMap := make(map[models.Date]models.WorkTime)
	weekMap := make(map[models.ISOWeek]models.WorkTime)

	for _, interval := range intervals {
		day := models.DateOf(interval.Start)
		total := dayMap[day]
		total.Add(interval.Work)
		dayMap[day] = total

		week := day.ISOWeek()
		wtotal := weekMap[week]
		wtotal.Add(interval.Work)
		weekMap[week] = wtotal
	}

	// Fill empty days so the daily series is gapless.
	for day := startDay; !day.After(today); day = day.AddDays(1) {
		if _, ok := dayMap[day]; !ok {
			dayMap[day] = models.WorkTime{}
		}
	}

	// Fill empty weeks. Stepping by the following Monday's date keeps the
	// ISO week-year correct across year boundaries.
	endWeek := today.ISOWeek()
	for day, week := startDay, startDay.ISOWeek(); !endWeek.Before(week); {
		if _, ok := weekMap[week]; !ok {
			weekMap[week] = models.WorkTime{}
		}
		day = day.AddDays(7)
		week = day.ISOWeek()
	}

	days := flattenDays(dayMap)
	weeks := flattenWeeks(weekMap)

	// Keep only the days from the current ISO week.
	keep := today.WeekdayIndex() + 1
	if len(days) > keep {
		days = days[len(days)-keep:]
	}

	reverseDays(days)
	reverseWeeks(weeks)

	return Buckets{Days: days, Weeks: weeks}
}

// flattenDays converts the accumulation map to a slice ascending by date.
func flattenDays(m map[models.Date]models.WorkTime) []models.DayTotal {
	out := make([]models.DayTotal, 0, len(m))
	for date, work := range m {
		out = append(out, models.DayTotal{Date: date, Work: work})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// flattenWeeks converts the accumulation map to a slice ascending by
// (year, week).
func flattenWeeks(m map[models.ISOWeek]models.WorkTime) []models.WeekTotal {
	out := make([]models.WeekTotal, 0, len(m))
	for week, work := range m {
		out = append(out, models.WeekTotal{Week: week, Work: work})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week.Before(out[j].Week) })
	return out
}

func reverseDays(s []models.DayTotal) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseWeeks(s []models.WeekTotal) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
