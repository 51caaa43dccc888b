package services

import (
	"sort"
	"time"

	"github.com/anonto42/lms/backend/internal/models"
)

// DayLayout formats a UTC calendar day.
const DayLayout = "2006-01-02"

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// TrailingWindow returns the window covering the given number of days up to now.
func TrailingWindow(now time.Time, days int) Window {
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayOf returns the UTC calendar day of t.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// HeatmapFromTimestamps buckets timestamps per UTC day. Only days with activity
// are returned, in ascending order.
func HeatmapFromTimestamps(timestamps []time.Time) []models.HeatmapDay {
	counts := make(map[string]int)
	for _, ts := range timestamps {
		counts[DayOf(ts)]++
	}

	days := make([]models.HeatmapDay, 0, len(counts))
	for day, count := range counts {
		days = append(days, models.HeatmapDay{Date: day, ActivityCount: count})
	}
	// YYYY-MM-DD sorts lexically in calendar order
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// FillCalendar expands a sparse heatmap to one entry per day of the window,
// with zero counts for idle days.
func FillCalendar(days []models.HeatmapDay, w Window) []models.HeatmapDay {
	counts := make(map[string]int, len(days))
	for _, d := range days {
		counts[d.Date] = d.ActivityCount
	}

	dense := []models.HeatmapDay{}
	last := w.End.Add(-time.Nanosecond)
	for d := dayStart(w.Start); !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(DayLayout)
		dense = append(dense, models.HeatmapDay{Date: key, ActivityCount: counts[key]})
	}
	return dense
}

// StreaksFromTimestamps computes the current and longest runs of consecutive
// active UTC days. The current run counts back from today and is zero when
// today has no activity, even if yesterday had some.
func StreaksFromTimestamps(timestamps []time.Time, today time.Time) models.Streaks {
	active := make(map[time.Time]struct{}, len(timestamps))
	for _, ts := range timestamps {
		active[dayStart(ts)] = struct{}{}
	}
	if len(active) == 0 {
		return models.Streaks{}
	}

	current := 0
	for d := dayStart(today); ; d = d.AddDate(0, 0, -1) {
		if _, ok := active[d]; !ok {
			break
		}
		current++
	}

	distinct := make([]time.Time, 0, len(active))
	for d := range active {
		distinct = append(distinct, d)
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i].After(distinct[j]) })

	longest, run := 1, 1
	for i := 1; i < len(distinct); i++ {
		if distinct[i].AddDate(0, 0, 1).Equal(distinct[i-1]) {
			run++
			continue
		}
		longest = max(longest, run)
		run = 1
	}
	longest = max(longest, run)

	return models.Streaks{CurrentStreak: current, LongestStreak: longest}
}
