package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/adiazny/calendar-events/internal/pkg/calendar"
	"github.com/adiazny/calendar-events/internal/pkg/dates"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = map[string]*template.Template{
	HomeRoute:  parsePage("templates/home.html"),
	AboutRoute: parsePage("templates/about.html"),
}

func parsePage(file string) *template.Template {
	return template.Must(template.New("layout.html").ParseFS(templateFS, "templates/layout.html", file))
}

type EventLister interface {
	FetchEvents(ctx context.Context) (*calendar.BackendResponse, error)
}

type EventSubmitter interface {
	Submit(ctx context.Context, payload calendar.CalendarEventAPIPayload) (*calendar.BackendResponse, error)
}

type Server struct {
	Log       *logrus.Entry
	Events    EventLister
	Submitter EventSubmitter
	Now       func() time.Time
	Location  *time.Location
}

// Handler registers every route and the metrics endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	home, _ := RouteByName(HomeRoute)
	about, _ := RouteByName(AboutRoute)

	mux.HandleFunc(pattern(http.MethodGet, home.Path), countPage(home, s.handleHome(home)))
	mux.HandleFunc(pattern(http.MethodPost, home.Path), countPage(home, s.handleCreate(home)))
	mux.HandleFunc(pattern(http.MethodGet, about.Path), countPage(about, s.handleAbout(about)))
	mux.Handle(pattern(http.MethodGet, "/metrics"), promhttp.Handler())

	return logRequests(s.Log, mux)
}

func (s *Server) now() time.Time {
	now := s.Now
	if now == nil {
		now = time.Now
	}

	t := now()
	if s.Location != nil {
		t = t.In(s.Location)
	}
	return t
}

type aboutPage struct {
	Title string
}

func (s *Server) handleAbout(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, http.StatusOK, route.Name, aboutPage{Title: route.Title})
	}
}

// render executes the page into a buffer first so a template error still yields a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates[name].Execute(&buf, data); err != nil {
		s.Log.WithError(err).WithField("page", name).Error("error rendering page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func monthQuery(d civil.Date) string {
	return dates.Month.Format(d)
}

func parseMonthQuery(raw string, today civil.Date) (civil.Date, error) {
	if raw == "" {
		return dates.MonthStart(today), nil
	}

	return dates.ParseMonth(raw)
}
