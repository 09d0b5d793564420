package dates

import (
	"time"

	"cloud.google.com/go/civil"
)

func MonthStart(d civil.Date) civil.Date {
	return civil.Date{Year: d.Year, Month: d.Month, Day: 1}
}

func monthEnd(d civil.Date) civil.Date {
	return civil.DateOf(MonthStart(d).In(time.UTC).AddDate(0, 1, -1))
}

func weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// MonthGrid returns the days shown for month's calendar page: from the Sunday on or
// before the first of the month to the Saturday on or after its last day.
func MonthGrid(month civil.Date) []civil.Date {
	first := MonthStart(month)
	last := monthEnd(month)

	start := first.AddDays(-int(weekday(first)))
	end := last.AddDays(int(time.Saturday - weekday(last)))

	return Range(start, end)
}
