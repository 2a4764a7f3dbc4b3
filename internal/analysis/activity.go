package analysis

import (
	"errors"
	"sort"
	"time"

	"github.com/conversight/conversight/internal/record"
)

// ErrNoData indicates the requested aggregation has no dated rows to work on.
var ErrNoData = errors.New("no dated rows in table")

// UserCount pairs a username with a message count.
type UserCount struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// LabelCount pairs an axis label (weekday, month) with a message count.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DayCount is one point of a per-user activity series.
type DayCount struct {
	Date     time.Time `json:"date"`
	Username string    `json:"username"`
	Count    int       `json:"count"`
}

// HeatmapRow is one weekday row of the weekday-by-period activity heatmap.
type HeatmapRow struct {
	Day    string                `json:"day"`
	Counts map[record.Period]int `json:"counts"`
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var periods = []record.Period{record.Night, record.Morning, record.Afternoon, record.Evening}

// LongestStreak returns the size, in messages, of the longest run of dated
// rows in which each successive row falls exactly one whole day after the
// previous one. Scoped to a single user when user is non-empty.
func LongestStreak(table record.Table, user string) int {
	rows := table.ForUser(user).Dated()
	if len(rows) == 0 {
		return 0
	}

	// Streaks live on calendar days, not 24-hour windows.
	dates := make([]time.Time, len(rows))
	for i, r := range rows {
		y, m, d := r.Date.Date()
		dates[i] = time.Date(y, m, d, 0, 0, 0, 0, r.Date.Location())
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	best, run := 1, 1

	for i := 1; i < len(dates); i++ {
		if wholeDays(dates[i-1], dates[i]) == 1 {
			run++
		} else {
			run = 1
		}

		if run > best {
			best = run
		}
	}

	return best
}

func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// Throwback returns the chronologically earliest dated row as a formatted
// date, username, and message.
func Throwback(table record.Table) (date, username, message string, err error) {
	rows := table.Dated()
	if len(rows) == 0 {
		return "", "", "", ErrNoData
	}

	oldest := rows[0]

	for _, r := range rows[1:] {
		if r.Date.Before(*oldest.Date) {
			oldest = r
		}
	}

	return oldest.Date.Format("02 Jan 2006"), oldest.Username, oldest.Message, nil
}

// BusiestUsers returns the five most and five least active users, both in
// descending message-count order. Ties keep first-seen order.
func BusiestUsers(table record.Table) (top, bottom []UserCount) {
	counts := countByUser(table)
	if len(counts) == 0 {
		return nil, nil
	}

	top = counts
	if len(top) > 5 {
		top = counts[:5]
	}

	bottom = counts
	if len(counts) > 5 {
		bottom = counts[len(counts)-5:]
	}

	return append([]UserCount(nil), top...), append([]UserCount(nil), bottom...)
}

func countByUser(table record.Table) []UserCount {
	byUser := make(map[string]int)

	for _, r := range table {
		if r.Username != "" {
			byUser[r.Username]++
		}
	}

	counts := make([]UserCount, 0, len(byUser))
	for _, u := range table.Users() {
		counts = append(counts, UserCount{Username: u, Count: byUser[u]})
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })

	return counts
}

// ActivityOverTime counts messages per calendar day per user, ordered by day.
func ActivityOverTime(user string, table record.Table) []DayCount {
	rows := table.ForUser(user).Dated()

	type key struct {
		day  time.Time
		user string
	}

	counts := make(map[key]int)

	for _, r := range rows {
		d := r.Date.Truncate(24 * time.Hour)
		counts[key{day: d, user: r.Username}]++
	}

	out := make([]DayCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, DayCount{Date: k.day, Username: k.user, Count: c})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}

		return out[i].Username < out[j].Username
	})

	return out
}

// WeekActivity counts messages per weekday, reindexed Monday through Sunday
// with zero-filled gaps.
func WeekActivity(user string, table record.Table) []LabelCount {
	rows := table.ForUser(user)

	byDay := make(map[string]int)

	for _, r := range rows {
		if r.Day != "" {
			byDay[r.Day]++
		}
	}

	out := make([]LabelCount, 0, len(weekdays))
	for _, d := range weekdays {
		out = append(out, LabelCount{Label: d, Count: byDay[d]})
	}

	return out
}

// MonthActivity counts messages per month name in calendar order. Months
// without any message are omitted.
func MonthActivity(user string, table record.Table) []LabelCount {
	rows := table.ForUser(user)

	byMonth := make(map[string]int)

	for _, r := range rows {
		if r.Month != "" {
			byMonth[r.Month]++
		}
	}

	var out []LabelCount

	for m := time.January; m <= time.December; m++ {
		if c := byMonth[m.String()]; c > 0 {
			out = append(out, LabelCount{Label: m.String(), Count: c})
		}
	}

	return out
}

// Heatmap counts messages per weekday and period bucket, zero-filled over
// the full Monday-Sunday by Night-Evening grid.
func Heatmap(user string, table record.Table) []HeatmapRow {
	rows := table.ForUser(user)

	grid := make(map[string]map[record.Period]int, len(weekdays))
	for _, d := range weekdays {
		grid[d] = make(map[record.Period]int, len(periods))
		for _, p := range periods {
			grid[d][p] = 0
		}
	}

	for _, r := range rows {
		if r.Day == "" || r.Period == "" {
			continue
		}

		grid[r.Day][r.Period]++
	}

	out := make([]HeatmapRow, 0, len(weekdays))
	for _, d := range weekdays {
		out = append(out, HeatmapRow{Day: d, Counts: grid[d]})
	}

	return out
}

// Comparative counts messages per user over [from, to] (to-date inclusive),
// restricted to the given contenders, in descending order.
func Comparative(table record.Table, users []string, from, to time.Time) []UserCount {
	include := make(map[string]bool, len(users))
	for _, u := range users {
		include[u] = true
	}

	end := to.AddDate(0, 0, 1)

	filtered := make(record.Table, 0, len(table))

	for _, r := range table.Dated() {
		if !include[r.Username] {
			continue
		}

		if r.Date.Before(from) || !r.Date.Before(end) {
			continue
		}

		filtered = append(filtered, r)
	}

	return countByUser(filtered)
}
