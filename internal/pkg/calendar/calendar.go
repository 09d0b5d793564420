package calendar

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/adiazny/calendar-events/internal/pkg/dates"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

type CalendarEvent struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// Day returns the event date as a calendar day.
func (e CalendarEvent) Day() (civil.Date, error) {
	return dates.ParseDay(e.Date)
}

type NewEvent struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// NewEventOn builds a NewEvent with its date in API format.
func NewEventOn(day civil.Date, name string) NewEvent {
	return NewEvent{
		Date: dates.API.Format(day),
		Name: name,
	}
}

type CalendarEventAPIPayload struct {
	Payload []NewEvent `json:"payload"`
}

func NewPayload(events ...NewEvent) CalendarEventAPIPayload {
	return CalendarEventAPIPayload{Payload: events}
}

// BackendResponse is the envelope around every backend reply. The shape of Data
// depends on the endpoint called.
type BackendResponse struct {
	Data   []json.RawMessage `json:"data"`
	Status Status            `json:"status"`
	Code   int               `json:"code"`
}

func (r BackendResponse) OK() bool {
	return r.Status == StatusSuccess
}

// Events decodes Data as calendar events.
func (r BackendResponse) Events() ([]CalendarEvent, error) {
	events := make([]CalendarEvent, 0, len(r.Data))

	for i, raw := range r.Data {
		var event CalendarEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, fmt.Errorf("error unmarshalling event %d %w", i, err)
		}
		events = append(events, event)
	}

	return events, nil
}
