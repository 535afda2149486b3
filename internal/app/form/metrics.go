package form

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	outcomeInvalid   = "invalid"
	outcomeThrottled = "throttled"
	outcomeSucceeded = "succeeded"
	outcomeServer    = "server_error"
	outcomeTransport = "transport_error"
	outcomeStale     = "stale"
)

var submissions = newSubmissionCounter()

func newSubmissionCounter() metric.Int64Counter {
	counter, err := otel.Meter("userdesk/internal/app/form").Int64Counter(
		"userdesk.form.submissions",
		metric.WithDescription("Form submissions by form and outcome."),
	)
	if err != nil {
		return noop.Int64Counter{}
	}
	return counter
}

func recordSubmission(ctx context.Context, form, outcome string) {
	submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("form", form),
		attribute.String("outcome", outcome),
	))
}
