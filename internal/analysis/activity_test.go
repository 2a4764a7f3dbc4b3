package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conversight/conversight/internal/record"
)

func day(d int) time.Time {
	return time.Date(2023, time.June, d, 12, 0, 0, 0, time.UTC)
}

func TestLongestStreak(t *testing.T) {
	table := record.Table{
		row("Alice", "a", day(1)),
		row("Alice", "b", day(2)),
		row("Alice", "c", day(3)),
		row("Alice", "d", day(6)),
	}

	require.Equal(t, 3, LongestStreak(table, "Alice"))
	require.Equal(t, 3, LongestStreak(table, ""))
}

func TestLongestStreakEdgeCases(t *testing.T) {
	require.Equal(t, 0, LongestStreak(record.Table{}, ""))

	single := record.Table{row("A", "m", day(1))}
	require.Equal(t, 1, LongestStreak(single, ""))

	// Same-day rows break the run: the gap is zero whole days, not one.
	sameDay := record.Table{
		row("A", "m", day(1)),
		row("A", "m", day(1)),
		row("A", "m", day(2)),
	}
	require.Equal(t, 2, LongestStreak(sameDay, ""))

	// Consecutive calendar days count even when under 24 hours apart.
	acrossMidnight := record.Table{
		row("A", "m", time.Date(2023, time.June, 1, 23, 0, 0, 0, time.UTC)),
		row("A", "m", time.Date(2023, time.June, 2, 1, 0, 0, 0, time.UTC)),
	}
	require.Equal(t, 2, LongestStreak(acrossMidnight, ""))

	undated := record.Table{record.New("A", "m", nil)}
	require.Equal(t, 0, LongestStreak(undated, ""))
}

func TestThrowback(t *testing.T) {
	table := record.Table{
		row("Bob", "later", day(20)),
		row("Alice", "first words", day(3)),
		record.New("Carol", "undated", nil),
	}

	date, user, message, err := Throwback(table)
	require.NoError(t, err)
	require.Equal(t, "03 Jun 2023", date)
	require.Equal(t, "Alice", user)
	require.Equal(t, "first words", message)
}

func TestThrowbackNoData(t *testing.T) {
	_, _, _, err := Throwback(record.Table{record.New("A", "undated", nil)})
	require.ErrorIs(t, err, ErrNoData)
}

func TestBusiestUsers(t *testing.T) {
	var table record.Table

	counts := map[string]int{"A": 7, "B": 3, "C": 9, "D": 1, "E": 5, "F": 5, "G": 2}
	order := []string{"A", "B", "C", "D", "E", "F", "G"}

	for _, u := range order {
		for i := 0; i < counts[u]; i++ {
			table = append(table, row(u, "m", day(1+i%28)))
		}
	}

	top, bottom := BusiestUsers(table)

	require.Len(t, top, 5)
	require.Equal(t, "C", top[0].Username)
	require.Equal(t, 9, top[0].Count)
	require.Equal(t, "A", top[1].Username)

	// E and F tie at 5; first-seen order wins.
	require.Equal(t, "E", top[2].Username)
	require.Equal(t, "F", top[3].Username)

	require.Len(t, bottom, 5)
	require.Equal(t, "D", bottom[len(bottom)-1].Username)
}

func TestBusiestUsersEmptyTable(t *testing.T) {
	top, bottom := BusiestUsers(record.Table{})
	require.Nil(t, top)
	require.Nil(t, bottom)
}

func TestActivityOverTime(t *testing.T) {
	table := record.Table{
		row("Alice", "a", day(1)),
		row("Alice", "b", day(1).Add(2*time.Hour)),
		row("Bob", "c", day(1)),
		row("Alice", "d", day(2)),
	}

	series := ActivityOverTime("", table)
	require.Len(t, series, 3)

	require.Equal(t, "Alice", series[0].Username)
	require.Equal(t, 2, series[0].Count)
	require.Equal(t, "Bob", series[1].Username)
	require.Equal(t, 1, series[1].Count)
	require.True(t, series[2].Date.After(series[0].Date))

	aliceOnly := ActivityOverTime("Alice", table)
	require.Len(t, aliceOnly, 2)
}

func TestWeekActivity(t *testing.T) {
	// 2023-06-05 is a Monday.
	table := record.Table{
		row("A", "m", time.Date(2023, time.June, 5, 10, 0, 0, 0, time.UTC)),
		row("A", "m", time.Date(2023, time.June, 5, 11, 0, 0, 0, time.UTC)),
		row("A", "m", time.Date(2023, time.June, 7, 10, 0, 0, 0, time.UTC)),
	}

	week := WeekActivity("", table)
	require.Len(t, week, 7)

	require.Equal(t, LabelCount{Label: "Monday", Count: 2}, week[0])
	require.Equal(t, LabelCount{Label: "Wednesday", Count: 1}, week[2])
	require.Equal(t, LabelCount{Label: "Sunday", Count: 0}, week[6])
}

func TestMonthActivity(t *testing.T) {
	table := record.Table{
		row("A", "m", time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)),
		row("A", "m", time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)),
		row("A", "m", time.Date(2023, time.March, 2, 0, 0, 0, 0, time.UTC)),
	}

	months := MonthActivity("", table)

	require.Equal(t, []LabelCount{
		{Label: "January", Count: 1},
		{Label: "March", Count: 2},
	}, months)
}

func TestHeatmap(t *testing.T) {
	table := record.Table{
		// Monday morning, Monday evening, Sunday night.
		row("A", "m", time.Date(2023, time.June, 5, 9, 0, 0, 0, time.UTC)),
		row("A", "m", time.Date(2023, time.June, 5, 20, 0, 0, 0, time.UTC)),
		row("A", "m", time.Date(2023, time.June, 4, 2, 0, 0, 0, time.UTC)),
	}

	grid := Heatmap("", table)
	require.Len(t, grid, 7)

	require.Equal(t, "Monday", grid[0].Day)
	require.Equal(t, 1, grid[0].Counts[record.Morning])
	require.Equal(t, 1, grid[0].Counts[record.Evening])
	require.Equal(t, 0, grid[0].Counts[record.Night])

	require.Equal(t, "Sunday", grid[6].Day)
	require.Equal(t, 1, grid[6].Counts[record.Night])

	// Every cell exists even when zero.
	for _, row := range grid {
		require.Len(t, row.Counts, 4)
	}
}

func TestComparative(t *testing.T) {
	table := record.Table{
		row("Alice", "in range", day(10)),
		row("Alice", "in range", day(12)),
		row("Bob", "in range", day(12)),
		row("Bob", "before range", day(1)),
		row("Carol", "not a contender", day(11)),
	}

	from := time.Date(2023, time.June, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, time.June, 12, 0, 0, 0, 0, time.UTC)

	counts := Comparative(table, []string{"Alice", "Bob"}, from, to)

	require.Equal(t, []UserCount{
		{Username: "Alice", Count: 2},
		{Username: "Bob", Count: 1},
	}, counts)
}
