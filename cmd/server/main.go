package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adiazny/calendar-events/internal/pkg/events"
	"github.com/adiazny/calendar-events/internal/pkg/submit"
	"github.com/adiazny/calendar-events/internal/pkg/web"
	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"
)

const shutdownTimeout = 10

type environmentVariables struct {
	APIURL   string `env:"API_URL,required"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Timezone string `env:"TIMEZONE"`
}

func setup(log *logrus.Entry) (envVars *environmentVariables, err error) {
	if err = godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}

	_, err = maxprocs.Set(maxprocs.Logger(log.Infof))
	if err != nil {
		return nil, fmt.Errorf("error setting GOMAXPROCS %w", err)
	}

	envVars = &environmentVariables{}

	err = env.Parse(envVars)
	if err != nil {
		return nil, fmt.Errorf("error parsing environment variables %w", err)
	}

	return envVars, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	log := logrus.NewEntry(logger).WithField("component", "calendar-events")
	log.Info("starting up")

	defer log.Info("shutting down")

	envVars, err := setup(log)
	if err != nil {
		log.WithError(err).Error()
		os.Exit(1)
	}

	level, err := logrus.ParseLevel(envVars.LogLevel)
	if err != nil {
		log.WithError(err).Error()
		os.Exit(1)
	}
	logger.SetLevel(level)

	location, err := loadLocation(envVars.Timezone)
	if err != nil {
		log.WithError(err).Error()
		os.Exit(1)
	}

	eventsClient := &events.Client{
		Log:    log.WithField("component", "events-client"),
		Config: events.Config{BaseURL: envVars.APIURL},
		HTTP:   &http.Client{},
	}

	server := &web.Server{
		Log:    log.WithField("component", "web"),
		Events: eventsClient,
		Submitter: &submit.Submitter{
			Log:      log.WithField("component", "submit"),
			Events:   eventsClient,
			Now:      time.Now,
			Location: location,
		},
		Now:      time.Now,
		Location: location,
	}

	httpServer := &http.Server{
		Addr:              ":" + envVars.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", httpServer.Addr).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("cannot start HTTP server")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
