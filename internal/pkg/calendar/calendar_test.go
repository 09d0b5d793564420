package calendar_test

import (
	"encoding/json"
	"os"
	"reflect"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/adiazny/calendar-events/internal/pkg/calendar"
)

func mustLoadResponse(t *testing.T, filePath string) calendar.BackendResponse {
	t.Helper()

	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatal(err)
	}

	var resp calendar.BackendResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestBackendResponse_Events(t *testing.T) {
	tests := []struct {
		name    string
		resp    calendar.BackendResponse
		want    []calendar.CalendarEvent
		wantErr bool
	}{
		{
			name: "events fixture",
			resp: mustLoadResponse(t, "testdata/events-response.json"),
			want: []calendar.CalendarEvent{
				{ID: 1, Name: "Dentist", Date: "2024-03-07"},
				{ID: 2, Name: "Rent due", Date: "2024-04-01"},
			},
		},
		{
			name: "empty data",
			resp: calendar.BackendResponse{Status: calendar.StatusSuccess, Code: 200},
			want: []calendar.CalendarEvent{},
		},
		{
			name: "data is not an event",
			resp: calendar.BackendResponse{
				Data:   []json.RawMessage{json.RawMessage(`"just a string"`)},
				Status: calendar.StatusSuccess,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.resp.Events()
			if (err != nil) != tt.wantErr {
				t.Errorf("BackendResponse.Events() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BackendResponse.Events() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBackendResponse_OK(t *testing.T) {
	if !(calendar.BackendResponse{Status: calendar.StatusSuccess}).OK() {
		t.Error("success envelope is not OK")
	}
	if (calendar.BackendResponse{Status: calendar.StatusError, Code: 500}).OK() {
		t.Error("error envelope is OK")
	}
}

func TestNewPayload(t *testing.T) {
	payload := calendar.NewPayload(
		calendar.NewEventOn(civil.Date{Year: 2024, Month: time.March, Day: 7}, "Dentist"),
	)

	got, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"payload":[{"date":"2024-03-07","name":"Dentist"}]}`
	if string(got) != want {
		t.Errorf("json.Marshal(payload) = %s, want %s", got, want)
	}
}

func TestCalendarEvent_Day(t *testing.T) {
	got, err := calendar.CalendarEvent{ID: 1, Name: "Dentist", Date: "2024-03-07"}.Day()
	if err != nil {
		t.Fatal(err)
	}
	if want := (civil.Date{Year: 2024, Month: time.March, Day: 7}); got != want {
		t.Errorf("CalendarEvent.Day() = %v, want %v", got, want)
	}

	if _, err := (calendar.CalendarEvent{Date: "March 7"}).Day(); err == nil {
		t.Error("CalendarEvent.Day() expected error")
	}
}
