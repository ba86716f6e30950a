package gameweek

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartDate(t *testing.T) {
	testCases := []struct {
		name   string
		in     time.Time
		expect time.Time
	}{
		{
			name:   "on the boundary weekday at midnight",
			in:     date(2024, time.January, 4), // a Thursday
			expect: date(2024, time.January, 4),
		},
		{
			name:   "on the boundary weekday late in the day",
			in:     time.Date(2024, time.January, 4, 23, 59, 59, 0, time.UTC),
			expect: date(2024, time.January, 4),
		},
		{
			name:   "the day after the boundary",
			in:     date(2024, time.January, 5), // Friday
			expect: date(2024, time.January, 4),
		},
		{
			name:   "the day before the boundary",
			in:     time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC), // Wednesday
			expect: date(2024, time.January, 4),
		},
		{
			name:   "start of the next period",
			in:     date(2024, time.January, 11), // next Thursday
			expect: date(2024, time.January, 11),
		},
		{
			name:   "non-UTC input is normalized to UTC",
			in:     time.Date(2024, time.January, 5, 3, 0, 0, 0, time.FixedZone("KST", 9*3600)), // 2024-01-04 18:00 UTC
			expect: date(2024, time.January, 4),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.expect.Equal(StartDate(tc.in)), "expected %v, got %v", tc.expect, StartDate(tc.in))
		})
	}
}

func TestStartDateStableWithinPeriod(t *testing.T) {
	// every instant between two Thursdays maps to the same period start
	start := date(2024, time.February, 1) // Thursday
	for hours := 0; hours < 7*24; hours += 7 {
		in := start.Add(time.Duration(hours) * time.Hour)
		assert.True(t, start.Equal(StartDate(in)), "offset %dh", hours)
	}
	assert.True(t, date(2024, time.February, 8).Equal(StartDate(start.Add(7*24*time.Hour))))
}

func TestEndDate(t *testing.T) {
	assert.True(t, date(2024, time.January, 10).Equal(EndDate(date(2024, time.January, 4))))
	assert.True(t, date(2024, time.January, 10).Equal(EndDate(date(2024, time.January, 9))))
}

func TestSamePeriod(t *testing.T) {
	assert.True(t, SamePeriod(date(2024, time.January, 4), date(2024, time.January, 10)))
	assert.False(t, SamePeriod(date(2024, time.January, 4), date(2024, time.January, 11)))
	assert.False(t, SamePeriod(date(2024, time.January, 3), date(2024, time.January, 4)))
}

func TestCurrentIsBoundaryWeekday(t *testing.T) {
	assert.Equal(t, time.Thursday, Current().Weekday())
	assert.False(t, Current().After(time.Now().UTC()))
}
