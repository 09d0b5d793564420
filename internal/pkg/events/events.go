package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/adiazny/calendar-events/internal/pkg/calendar"
	"github.com/adiazny/calendar-events/internal/pkg/metrics"
	"github.com/sirupsen/logrus"
)

const (
	calendarEventsEndpoint = "calendar-events"

	contentTypeHeaderKey = "Content-Type"
	jsonContentType      = "application/json"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	// BaseURL is joined with the endpoint name as is, so it usually ends with "/".
	BaseURL string
}

type Client struct {
	Log    *logrus.Entry
	Config Config
	HTTP   HTTPClient
}

func (client *Client) endpoint() string {
	return client.Config.BaseURL + calendarEventsEndpoint
}

// FetchEvents returns the backend envelope holding every known event.
func (client *Client) FetchEvents(ctx context.Context) (*calendar.BackendResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request %w", err)
	}

	return client.do(req)
}

// CreateEvents submits new events in a single request.
func (client *Client) CreateEvents(ctx context.Context, payload calendar.CalendarEventAPIPayload) (*calendar.BackendResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating http request %w", err)
	}

	req.Header.Set(contentTypeHeaderKey, jsonContentType)

	return client.do(req)
}

// do sends req and decodes the envelope. The HTTP status code is not inspected, callers
// look at the envelope status and code.
func (client *Client) do(req *http.Request) (*calendar.BackendResponse, error) {
	start := time.Now()
	log := client.Log.WithFields(logrus.Fields{
		"method":   req.Method,
		"endpoint": req.URL.String(),
	})

	resp, err := client.HTTP.Do(req)
	if err != nil {
		metrics.ObserveBackend(req.Method, metrics.OutcomeTransportError, "", time.Since(start))
		log.WithError(err).Error("backend request failed")
		return nil, fmt.Errorf("error performing http request %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveBackend(req.Method, metrics.OutcomeTransportError, "", time.Since(start))
		log.WithError(err).WithField("http_status", resp.StatusCode).Error("error reading backend response")
		return nil, fmt.Errorf("error reading response body %w", err)
	}

	backendResponse := &calendar.BackendResponse{}

	err = json.Unmarshal(body, backendResponse)
	if err != nil {
		metrics.ObserveBackend(req.Method, metrics.OutcomeDecodeError, "", time.Since(start))
		log.WithError(err).WithField("http_status", resp.StatusCode).Error("backend response is not an envelope")
		return nil, fmt.Errorf("error unmarshalling http response body %w", err)
	}

	metrics.ObserveBackend(req.Method, metrics.OutcomeOK, string(backendResponse.Status), time.Since(start))

	log.WithFields(logrus.Fields{
		"http_status": resp.StatusCode,
		"status":      backendResponse.Status,
		"code":        backendResponse.Code,
		"records":     len(backendResponse.Data),
	}).Debug("backend responded")

	return backendResponse, nil
}
