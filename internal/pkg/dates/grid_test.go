package dates_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/adiazny/calendar-events/internal/pkg/dates"
)

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name      string
		month     civil.Date
		wantStart string
		wantEnd   string
		wantLen   int
	}{
		{
			name:      "march 2024",
			month:     civil.Date{Year: 2024, Month: time.March, Day: 17},
			wantStart: "2024-02-25",
			wantEnd:   "2024-04-06",
			wantLen:   42,
		},
		{
			name:      "february 2015 fits four weeks",
			month:     civil.Date{Year: 2015, Month: time.February, Day: 1},
			wantStart: "2015-02-01",
			wantEnd:   "2015-02-28",
			wantLen:   28,
		},
		{
			name:      "december rolls into january",
			month:     civil.Date{Year: 2024, Month: time.December, Day: 31},
			wantStart: "2024-12-01",
			wantEnd:   "2025-01-04",
			wantLen:   35,
		},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got := dates.MonthGrid(tt.month)

			if len(got) != tt.wantLen {
				t.Fatalf("len(MonthGrid()) = %d, want %d", len(got), tt.wantLen)
			}
			if start := dates.API.Format(got[0]); start != tt.wantStart {
				t.Errorf("MonthGrid() starts %s, want %s", start, tt.wantStart)
			}
			if end := dates.API.Format(got[len(got)-1]); end != tt.wantEnd {
				t.Errorf("MonthGrid() ends %s, want %s", end, tt.wantEnd)
			}
			if wd := got[0].In(time.UTC).Weekday(); wd != time.Sunday {
				t.Errorf("MonthGrid() starts on %s", wd)
			}
		})
	}
}

func TestMonthStart(t *testing.T) {
	got := dates.MonthStart(civil.Date{Year: 2024, Month: time.March, Day: 17})
	if want := (civil.Date{Year: 2024, Month: time.March, Day: 1}); got != want {
		t.Errorf("MonthStart() = %v, want %v", got, want)
	}
}
