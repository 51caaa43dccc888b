package services

import (
	"testing"
	"time"

	"github.com/anonto42/lms/backend/internal/models"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return today.AddDate(0, 0, -n)
}

func TestHeatmapFromTimestampsCountsPerDayAscending(t *testing.T) {
	timestamps := []time.Time{
		daysAgo(0),
		daysAgo(3),
		daysAgo(0).Add(-time.Hour),
		daysAgo(1),
		daysAgo(3).Add(2 * time.Hour),
		daysAgo(3).Add(3 * time.Hour),
	}

	days := HeatmapFromTimestamps(timestamps)

	require.Equal(t, []models.HeatmapDay{
		{Date: "2024-05-17", ActivityCount: 3},
		{Date: "2024-05-19", ActivityCount: 1},
		{Date: "2024-05-20", ActivityCount: 2},
	}, days)

	total := 0
	for _, d := range days {
		total += d.ActivityCount
	}
	require.Equal(t, len(timestamps), total)
}

func TestHeatmapFromTimestampsUsesUTCDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 01:00 IST on the 21st is still the 20th in UTC
	days := HeatmapFromTimestamps([]time.Time{time.Date(2024, 5, 21, 1, 0, 0, 0, ist)})
	require.Equal(t, "2024-05-20", days[0].Date)
}

func TestHeatmapFromTimestampsEmpty(t *testing.T) {
	require.Empty(t, HeatmapFromTimestamps(nil))
}

func TestFillCalendarAddsIdleDays(t *testing.T) {
	w := Window{Start: daysAgo(3), End: today}
	dense := FillCalendar([]models.HeatmapDay{{Date: "2024-05-18", ActivityCount: 4}}, w)

	require.Equal(t, []models.HeatmapDay{
		{Date: "2024-05-17", ActivityCount: 0},
		{Date: "2024-05-18", ActivityCount: 4},
		{Date: "2024-05-19", ActivityCount: 0},
		{Date: "2024-05-20", ActivityCount: 0},
	}, dense)
}

func TestStreaksFromTimestamps(t *testing.T) {
	tests := []struct {
		name    string
		days    []int
		current int
		longest int
	}{
		{name: "no activity", days: nil, current: 0, longest: 0},
		{name: "today only", days: []int{0}, current: 1, longest: 1},
		{name: "three days ending today", days: []int{0, 1, 2}, current: 3, longest: 3},
		{name: "yesterday only", days: []int{1}, current: 0, longest: 1},
		{name: "longer run in the past", days: []int{0, 1, 5, 6, 7}, current: 2, longest: 3},
		{name: "several events per day", days: []int{0, 0, 1, 1, 1}, current: 2, longest: 2},
		{name: "gap before today", days: []int{0, 2, 3}, current: 1, longest: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timestamps := make([]time.Time, 0, len(tt.days))
			for _, d := range tt.days {
				timestamps = append(timestamps, daysAgo(d))
			}
			got := StreaksFromTimestamps(timestamps, today)
			require.Equal(t, tt.current, got.CurrentStreak)
			require.Equal(t, tt.longest, got.LongestStreak)
			require.LessOrEqual(t, got.CurrentStreak, got.LongestStreak)
		})
	}
}

func TestStreaksAcrossMonthBoundary(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	timestamps := []time.Time{
		time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	got := StreaksFromTimestamps(timestamps, now)
	require.Equal(t, models.Streaks{CurrentStreak: 3, LongestStreak: 3}, got)
}

func TestWindowIsHalfOpen(t *testing.T) {
	w := TrailingWindow(today, 365)
	require.True(t, w.Contains(w.Start))
	require.False(t, w.Contains(w.End))
	require.Equal(t, today, w.End)
}
