// Package submit validates new calendar events and sends them to the backend.
package submit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/adiazny/calendar-events/internal/pkg/calendar"
	"github.com/adiazny/calendar-events/internal/pkg/dates"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyPayload = errors.New("payload has no events")
	ErrEmptyName    = errors.New("event name is empty")
	ErrPastDate     = errors.New("event date is in the past")
)

type EventCreator interface {
	CreateEvents(ctx context.Context, payload calendar.CalendarEventAPIPayload) (*calendar.BackendResponse, error)
}

// Notifier is told about every payload the backend accepted a request for.
type Notifier interface {
	Notify(ctx context.Context, payload calendar.CalendarEventAPIPayload, resp *calendar.BackendResponse) error
}

type Submitter struct {
	Log      *logrus.Entry
	Events   EventCreator
	Notifier Notifier
	Now      func() time.Time
	Location *time.Location
}

// IsValidationError reports whether err was caused by the payload rather than the backend.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyPayload) ||
		errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrPastDate) ||
		errors.Is(err, dates.ErrInvalidDate)
}

func (s *Submitter) today() civil.Date {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	return dates.Today(now, s.Location)
}

// Submit checks every event, then sends them in one request. Nothing is sent if any
// event is rejected. The backend envelope is returned without interpretation.
func (s *Submitter) Submit(ctx context.Context, payload calendar.CalendarEventAPIPayload) (*calendar.BackendResponse, error) {
	normalized, err := s.validate(payload)
	if err != nil {
		s.Log.WithError(err).Warn("rejected events")
		return nil, err
	}

	resp, err := s.Events.CreateEvents(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("error creating events %w", err)
	}

	log := s.Log.WithFields(logrus.Fields{
		"events": len(normalized.Payload),
		"status": resp.Status,
		"code":   resp.Code,
	})
	log.Info("submitted events")

	if s.Notifier != nil {
		if err := s.Notifier.Notify(ctx, normalized, resp); err != nil {
			log.WithError(err).Error("notification failed")
		}
	}

	return resp, nil
}

func (s *Submitter) validate(payload calendar.CalendarEventAPIPayload) (calendar.CalendarEventAPIPayload, error) {
	if len(payload.Payload) == 0 {
		return calendar.CalendarEventAPIPayload{}, ErrEmptyPayload
	}

	today := s.today()
	events := make([]calendar.NewEvent, 0, len(payload.Payload))

	for i, event := range payload.Payload {
		name := strings.TrimSpace(event.Name)
		if name == "" {
			return calendar.CalendarEventAPIPayload{}, fmt.Errorf("event %d: %w", i, ErrEmptyName)
		}

		day, err := dates.Normalize(event.Date)
		if err != nil {
			return calendar.CalendarEventAPIPayload{}, fmt.Errorf("event %d: %w", i, err)
		}

		if !dates.IsSameOrAfter(day, today) {
			return calendar.CalendarEventAPIPayload{}, fmt.Errorf("event %d: %w: %s is before %s",
				i, ErrPastDate, dates.API.Format(day), dates.API.Format(today))
		}

		events = append(events, calendar.NewEventOn(day, name))
	}

	return calendar.NewPayload(events...), nil
}
