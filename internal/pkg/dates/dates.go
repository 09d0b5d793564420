package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateFormat is a named Go layout. Every date rendered or sent over the wire uses one of these.
type DateFormat string

const (
	// Header is used for the calendar header, e.g. "March 2024".
	Header DateFormat = "January 2006"
	// API is the format the backend accepts and returns, e.g. "2024-03-07".
	API DateFormat = "2006-01-02"
	// Display is used for a single grid cell, e.g. "7 Thu".
	Display DateFormat = "2 Mon"
	// Month identifies a calendar page in links, e.g. "2024-03".
	Month DateFormat = "2006-01"
)

var ErrInvalidDate = errors.New("invalid date")

var daysOfTheWeek = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// Weekdays returns the weekday names, index 0 being Sunday.
func Weekdays() [7]string {
	return daysOfTheWeek
}

func (f DateFormat) Format(d civil.Date) string {
	return d.In(time.UTC).Format(string(f))
}

// ParseMonth parses text in Month format and returns the first day of that month.
func ParseMonth(text string) (civil.Date, error) {
	t, err := time.Parse(string(Month), strings.TrimSpace(text))
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}

	return civil.DateOf(t), nil
}

// Datelike is any date representation accepted by the helpers in this package.
type Datelike interface {
	string | civil.Date | time.Time
}

// Normalize converts a Datelike value to a civil.Date. Text must be in API format,
// a time.Time is reduced to the calendar day in its own location.
func Normalize[T Datelike](v T) (civil.Date, error) {
	switch d := any(v).(type) {
	case civil.Date:
		if !d.IsValid() {
			return civil.Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, d)
		}
		return d, nil
	case time.Time:
		return civil.DateOf(d), nil
	case string:
		return ParseDay(d)
	}

	return civil.Date{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, v)
}

// ParseDay parses text in API format.
func ParseDay(text string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(text))
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}

	return d, nil
}

// IsSameOrAfter reports whether date falls on basis or any later day.
func IsSameOrAfter(date, basis civil.Date) bool {
	return !date.Before(basis)
}

// ValidateFutureDate reports whether date is the same calendar day as basis or later.
// Time of day is ignored.
func ValidateFutureDate[T, B Datelike](date T, basis B) (bool, error) {
	d, err := Normalize(date)
	if err != nil {
		return false, err
	}

	b, err := Normalize(basis)
	if err != nil {
		return false, err
	}

	return IsSameOrAfter(d, b), nil
}

// Range returns every day from start through end inclusive. It is empty when start is after end.
func Range(start, end civil.Date) []civil.Date {
	if start.After(end) {
		return []civil.Date{}
	}

	days := make([]civil.Date, 0, end.DaysSince(start)+1)
	for day := start; !day.After(end); day = day.AddDays(1) {
		days = append(days, day)
	}

	return days
}

// DaysBetweenDates normalizes both ends and returns Range(start, end).
func DaysBetweenDates[S, E Datelike](start S, end E) ([]civil.Date, error) {
	s, err := Normalize(start)
	if err != nil {
		return nil, err
	}

	e, err := Normalize(end)
	if err != nil {
		return nil, err
	}

	return Range(s, e), nil
}

// Today returns the current calendar day in loc. A nil loc means the location of now().
func Today(now func() time.Time, loc *time.Location) civil.Date {
	t := now()
	if loc != nil {
		t = t.In(loc)
	}

	return civil.DateOf(t)
}
