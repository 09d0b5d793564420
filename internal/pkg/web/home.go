package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/adiazny/calendar-events/internal/pkg/calendar"
	"github.com/adiazny/calendar-events/internal/pkg/dates"
	"github.com/adiazny/calendar-events/internal/pkg/submit"
)

type cell struct {
	Date    string
	Label   string
	InMonth bool
	IsToday bool
	// Open cells accept new events.
	Open   bool
	Events []calendar.CalendarEvent
}

type homePage struct {
	Title     string
	Header    string
	PrevMonth string
	NextMonth string
	Weekdays  [7]string
	Weeks     [][]cell
	Banner    string
	FormError string
	FormDate  string
	FormName  string
}

func (s *Server) handleHome(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := civil.DateOf(s.now())

		month, err := parseMonthQuery(r.URL.Query().Get("month"), today)
		if err != nil {
			http.Error(w, "Invalid month, expected YYYY-MM", http.StatusBadRequest)
			return
		}

		page, status := s.homePage(r, route, month, today)
		s.render(w, status, route.Name, page)
	}
}

// handleCreate takes the new-event form. The date may be API formatted or natural text.
func (s *Server) handleCreate(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := s.now()
		today := civil.DateOf(now)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		rawDate := r.PostFormValue("date")
		name := r.PostFormValue("name")

		rerender := func(status int, month civil.Date, formError, banner string) {
			page, _ := s.homePage(r, route, month, today)
			page.FormError = formError
			page.FormDate = rawDate
			page.FormName = name
			if banner != "" {
				page.Banner = banner
			}
			s.render(w, status, route.Name, page)
		}

		day, err := dates.ParseNatural(rawDate, now)
		if err != nil {
			rerender(http.StatusUnprocessableEntity, dates.MonthStart(today), fmt.Sprintf("Could not understand the date %q.", rawDate), "")
			return
		}

		resp, err := s.Submitter.Submit(r.Context(), calendar.NewPayload(calendar.NewEventOn(day, name)))
		switch {
		case err == nil && resp.OK():
			http.Redirect(w, r, "/?month="+monthQuery(day), http.StatusSeeOther)
		case err == nil:
			rerender(http.StatusBadGateway, dates.MonthStart(day), "", fmt.Sprintf("The backend rejected the event: %s (%d).", resp.Status, resp.Code))
		case submit.IsValidationError(err):
			rerender(http.StatusUnprocessableEntity, dates.MonthStart(day), formMessage(err), "")
		default:
			s.Log.WithError(err).Error("error submitting event")
			rerender(http.StatusBadGateway, dates.MonthStart(day), "", "Could not reach the calendar backend.")
		}
	}
}

func formMessage(err error) string {
	switch {
	case errors.Is(err, submit.ErrEmptyName):
		return "Please give the event a name."
	case errors.Is(err, submit.ErrPastDate):
		return "Events can only be created for today or a later day."
	default:
		return "The event could not be created."
	}
}

// homePage builds the month view. The returned status is not 200 when events could not be loaded.
func (s *Server) homePage(r *http.Request, route Route, month, today civil.Date) (homePage, int) {
	page := homePage{
		Title:     route.Title,
		Header:    dates.Header.Format(month),
		PrevMonth: monthQuery(dates.MonthStart(month).AddDays(-1)),
		NextMonth: monthQuery(dates.MonthStart(month).AddDays(31)),
		Weekdays:  dates.Weekdays(),
	}
	status := http.StatusOK

	byDay := map[civil.Date][]calendar.CalendarEvent{}

	resp, err := s.Events.FetchEvents(r.Context())
	switch {
	case err != nil:
		s.Log.WithError(err).Error("error fetching events")
		page.Banner = "Could not load events."
		status = http.StatusBadGateway
	case !resp.OK():
		page.Banner = fmt.Sprintf("The backend reported an error: %s (%d).", resp.Status, resp.Code)
	default:
		grouped, err := s.groupByDay(resp)
		if err != nil {
			s.Log.WithError(err).Error("backend data is not a list of events")
			page.Banner = "The backend sent events that could not be read."
			break
		}
		byDay = grouped
	}

	grid := dates.MonthGrid(month)
	for i, day := range grid {
		if i%7 == 0 {
			page.Weeks = append(page.Weeks, make([]cell, 0, 7))
		}
		week := &page.Weeks[len(page.Weeks)-1]
		*week = append(*week, cell{
			Date:    dates.API.Format(day),
			Label:   dates.Display.Format(day),
			InMonth: day.Month == month.Month && day.Year == month.Year,
			IsToday: day == today,
			Open:    dates.IsSameOrAfter(day, today),
			Events:  byDay[day],
		})
	}

	return page, status
}

func (s *Server) groupByDay(resp *calendar.BackendResponse) (map[civil.Date][]calendar.CalendarEvent, error) {
	events, err := resp.Events()
	if err != nil {
		return nil, err
	}

	byDay := map[civil.Date][]calendar.CalendarEvent{}

	for _, event := range events {
		day, err := event.Day()
		if err != nil {
			s.Log.WithError(err).WithField("event_id", event.ID).Warn("skipping event with bad date")
			continue
		}
		event.Name = strings.TrimSpace(event.Name)
		byDay[day] = append(byDay[day], event)
	}

	return byDay, nil
}
