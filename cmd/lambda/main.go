package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/adiazny/calendar-events/internal/pkg/calendar"
	"github.com/adiazny/calendar-events/internal/pkg/events"
	"github.com/adiazny/calendar-events/internal/pkg/notify"
	"github.com/adiazny/calendar-events/internal/pkg/submit"
	"github.com/aws/aws-lambda-go/lambda"
	cfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/caarlos0/env"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"
)

type environmentVariables struct {
	APIURL   string `env:"API_URL,required"`
	TopicARN string `env:"TOPIC_ARN,required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`
}

func setup() (envVars *environmentVariables, err error) {
	_, err = maxprocs.Set()
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

// HandleRequest submits the events in the invocation payload and announces them on SNS.
// A backend error envelope is returned as the result, not as an invocation error.
func HandleRequest(ctx context.Context, payload calendar.CalendarEventAPIPayload) (calendar.BackendResponse, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	log := logrus.NewEntry(logger).WithField("component", "calendar-events-lambda")
	log.Info("starting up")

	defer log.Info("shutting down")

	envVars, err := setup()
	if err != nil {
		return calendar.BackendResponse{}, err
	}

	if level, err := logrus.ParseLevel(envVars.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	location, err := time.LoadLocation(envVars.Timezone)
	if err != nil {
		return calendar.BackendResponse{}, fmt.Errorf("error loading timezone %w", err)
	}

	awsConfig, err := cfg.LoadDefaultConfig(ctx)
	if err != nil {
		return calendar.BackendResponse{}, fmt.Errorf("error loading AWS config %w", err)
	}

	submitter := &submit.Submitter{
		Log: log.WithField("component", "submit"),
		Events: &events.Client{
			Log:    log.WithField("component", "events-client"),
			Config: events.Config{BaseURL: envVars.APIURL},
			HTTP:   &http.Client{},
		},
		Notifier: &notify.Publisher{
			Log:      log.WithField("component", "notify"),
			TopicARN: envVars.TopicARN,
			SNS:      sns.NewFromConfig(awsConfig),
		},
		Now:      time.Now,
		Location: location,
	}

	resp, err := submitter.Submit(ctx, payload)
	if err != nil {
		log.WithError(err).Error()
		return calendar.BackendResponse{}, err
	}

	return *resp, nil
}

func main() {
	lambda.Start(HandleRequest)
}
