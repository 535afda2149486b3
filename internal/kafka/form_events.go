package kafka

import (
	"context"
	"fmt"
	"userdesk/internal/app/form"
	"userdesk/internal/config"
	"userdesk/internal/domain/user"
	"userdesk/internal/logging"
)

const (
	UserCreatedType      = "ConsoleUserCreated"
	UserFoundType        = "ConsoleUserFound"
	SubmissionFailedType = "ConsoleSubmissionFailed"
)

type formEvents struct {
	bus         Bus
	topicPrefix string
	logger      logging.Logger
}

func NewFormEvents(bus Bus, cfg config.KafkaConfig, logger logging.Logger) form.Events {
	return &formEvents{
		bus:         bus,
		topicPrefix: cfg.TopicPrefix,
		logger:      logger.With("component", "form_events"),
	}
}

func (e *formEvents) topic() string {
	return e.topicPrefix + "userdesk.activity"
}

func (e *formEvents) UserCreated(ctx context.Context, id, email string) error {
	payload := struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}{ID: id, Email: email}

	if err := e.bus.Publish(ctx, e.topic(), UserCreatedType, payload); err != nil {
		return fmt.Errorf("publish %s: %w", UserCreatedType, err)
	}
	return nil
}

func (e *formEvents) UserFound(ctx context.Context, u user.User) error {
	if err := e.bus.Publish(ctx, e.topic(), UserFoundType, u); err != nil {
		return fmt.Errorf("publish %s: %w", UserFoundType, err)
	}
	return nil
}

func (e *formEvents) SubmissionFailed(ctx context.Context, f form.Failure) error {
	if err := e.bus.Publish(ctx, e.topic(), SubmissionFailedType, f); err != nil {
		return fmt.Errorf("publish %s: %w", SubmissionFailedType, err)
	}
	return nil
}
