package form

import (
	"context"
	"userdesk/internal/domain/user"
)

// Failure describes a submission that ended without a result.
// Reason is only filled for server-reported errors.
type Failure struct {
	Form   string `json:"form"`
	Kind   string `json:"kind"`
	Status int    `json:"status,omitempty"`
	Reason string `json:"reason,omitempty"`
}

const (
	FailureServer    = "server"
	FailureTransport = "transport"
)

// Events receives the outcome of applied submissions.
type Events interface {
	UserCreated(ctx context.Context, id, email string) error
	UserFound(ctx context.Context, u user.User) error
	SubmissionFailed(ctx context.Context, f Failure) error
}

// NoopEvents No-op implementation, useful for tests or when no sink is configured.
type NoopEvents struct{}

func (NoopEvents) UserCreated(ctx context.Context, id, email string) error { return nil }
func (NoopEvents) UserFound(ctx context.Context, u user.User) error         { return nil }
func (NoopEvents) SubmissionFailed(ctx context.Context, f Failure) error    { return nil }
