package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"userdesk/internal/clients/usersapi"
	"userdesk/internal/domain/user"
	"userdesk/internal/httpclient"
	"userdesk/internal/logging"
)

const (
	FormCreate = "create"
	FormSearch = "search"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// UsersAPI is the remote API the controller submits to.
type UsersAPI interface {
	CreateUser(ctx context.Context, req usersapi.CreateUserRequest) (usersapi.CreateUserResponse, error)
	FindUserByEmail(ctx context.Context, email string) (user.User, error)
}

// Limiter decides whether a submission may reach the network.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type CreateState struct {
	Fields  user.CreateUserData `json:"fields"`
	Phase   Phase               `json:"phase"`
	Message Message             `json:"message"`
}

func (s CreateState) Loading() bool { return s.Phase == PhaseSubmitting }

type SearchState struct {
	Email   string     `json:"email"`
	Phase   Phase      `json:"phase"`
	Message Message    `json:"message"`
	Result  *user.User `json:"result,omitempty"`
}

func (s SearchState) Loading() bool { return s.Phase == PhaseSubmitting }

// Snapshot is a consistent copy of one controller's state. Version grows with
// every mutation so consumers can drop out-of-order snapshots.
type Snapshot struct {
	Version uint64      `json:"version"`
	Create  CreateState `json:"create"`
	Search  SearchState `json:"search"`
}

type Options struct {
	// Key identifies the owner (the session id); used for throttling and logs.
	Key      string
	Messages Catalogue
	Events   Events
	Limiter  Limiter
	Logger   logging.Logger
}

// Controller owns the create and search forms of one session.
type Controller struct {
	api     UsersAPI
	key     string
	msgs    Catalogue
	events  Events
	limiter Limiter
	logger  logging.Logger

	mu        sync.Mutex
	version   uint64
	create    CreateState
	createSeq uint64
	search    SearchState
	searchSeq uint64
	inFlight  int
	nextSubID int
	listeners map[int]func(Snapshot)
}

var validate = validator.New()

type searchInput struct {
	Email string `validate:"required"`
}

func NewController(api UsersAPI, opts Options) *Controller {
	if opts.Messages.Locale == "" {
		opts.Messages = French
	}
	if opts.Events == nil {
		opts.Events = NoopEvents{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	return &Controller{
		api:       api,
		key:       opts.Key,
		msgs:      opts.Messages,
		events:    opts.Events,
		limiter:   opts.Limiter,
		logger:    opts.Logger.With("component", "form_controller", "session_id", opts.Key),
		create:    CreateState{Phase: PhaseIdle},
		search:    SearchState{Phase: PhaseIdle},
		listeners: make(map[int]func(Snapshot)),
	}
}

func (c *Controller) Messages() Catalogue {
	return c.msgs
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

// Subscribe registers fn to be called with a fresh snapshot after every change.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Controller) SetCreateEmail(v string) {
	c.update(func() { c.create.Fields.Email = v; c.settleCreate() })
}

func (c *Controller) SetCreateName(v string) {
	c.update(func() { c.create.Fields.Name = v; c.settleCreate() })
}

func (c *Controller) SetSearchEmail(v string) {
	c.update(func() { c.search.Email = v; c.settleSearch() })
}

// settleCreate moves a finished form back to idle on edit. The message stays.
func (c *Controller) settleCreate() {
	if c.create.Phase == PhaseSucceeded || c.create.Phase == PhaseFailed {
		c.create.Phase = PhaseIdle
	}
}

func (c *Controller) settleSearch() {
	if c.search.Phase == PhaseSucceeded || c.search.Phase == PhaseFailed {
		c.search.Phase = PhaseIdle
	}
}

// SubmitCreate validates the create form and, when valid, sends it. The
// returned channel is closed once the submission has settled. Validation and
// throttling failures settle before SubmitCreate returns.
func (c *Controller) SubmitCreate(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	data := c.create.Fields
	c.mu.Unlock()

	if err := validate.Struct(data); err != nil {
		c.rejectCreate(c.msgs.FillAllFields)
		recordSubmission(ctx, FormCreate, outcomeInvalid)
		close(done)
		return done
	}

	if !c.allow(ctx, FormCreate) {
		c.rejectCreate(c.msgs.Throttled)
		recordSubmission(ctx, FormCreate, outcomeThrottled)
		close(done)
		return done
	}

	var seq uint64
	c.update(func() {
		c.createSeq++
		seq = c.createSeq
		c.inFlight++
		c.create.Phase = PhaseSubmitting
		c.create.Message = Message{}
	})

	go func() {
		defer close(done)
		res, err := c.api.CreateUser(ctx, usersapi.CreateUserRequest{
			Email: data.Email,
			Name:  data.Name,
		})
		c.finishCreate(ctx, seq, data, res, err)
	}()

	return done
}

func (c *Controller) finishCreate(ctx context.Context, seq uint64, data user.CreateUserData, res usersapi.CreateUserResponse, err error) {
	var httpErr *httpclient.HTTPError
	outcome := outcomeSucceeded
	switch {
	case err == nil:
	case errors.As(err, &httpErr):
		outcome = outcomeServer
	default:
		outcome = outcomeTransport
		c.logger.Error("create user request failed", "error", err, "email", data.Email)
	}

	applied := c.apply(func() bool {
		c.inFlight--
		if seq != c.createSeq {
			return false
		}
		switch outcome {
		case outcomeSucceeded:
			c.create.Fields = user.CreateUserData{}
			c.create.Phase = PhaseSucceeded
			c.create.Message = successMessage(fmt.Sprintf(c.msgs.Created, res.ID))
		case outcomeServer:
			c.create.Phase = PhaseFailed
			c.create.Message = errorMessage(fmt.Sprintf(c.msgs.ServerError, httpErr.Message))
		default:
			c.create.Phase = PhaseFailed
			c.create.Message = errorMessage(c.msgs.ConnectionError)
		}
		return true
	})

	if !applied {
		c.logger.Info("dropping superseded create response", "outcome", outcome, "id", res.ID)
		recordSubmission(ctx, FormCreate, outcomeStale)
		return
	}
	recordSubmission(ctx, FormCreate, outcome)

	var evErr error
	switch outcome {
	case outcomeSucceeded:
		evErr = c.events.UserCreated(ctx, res.ID, data.Email)
	case outcomeServer:
		evErr = c.events.SubmissionFailed(ctx, Failure{Form: FormCreate, Kind: FailureServer, Status: httpErr.StatusCode, Reason: httpErr.Message})
	default:
		evErr = c.events.SubmissionFailed(ctx, Failure{Form: FormCreate, Kind: FailureTransport})
	}
	if evErr != nil {
		c.logger.Error("failed to publish create outcome", "error", evErr, "outcome", outcome)
	}
}

// SubmitSearch validates the search form and, when valid, looks the email up.
// The previous result is cleared as soon as the lookup starts.
func (c *Controller) SubmitSearch(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	email := c.search.Email
	c.mu.Unlock()

	if err := validate.Struct(searchInput{Email: email}); err != nil {
		c.rejectSearch(c.msgs.EnterEmail)
		recordSubmission(ctx, FormSearch, outcomeInvalid)
		close(done)
		return done
	}

	if !c.allow(ctx, FormSearch) {
		c.rejectSearch(c.msgs.Throttled)
		recordSubmission(ctx, FormSearch, outcomeThrottled)
		close(done)
		return done
	}

	var seq uint64
	c.update(func() {
		c.searchSeq++
		seq = c.searchSeq
		c.inFlight++
		c.search.Phase = PhaseSubmitting
		c.search.Message = Message{}
		c.search.Result = nil
	})

	go func() {
		defer close(done)
		u, err := c.api.FindUserByEmail(ctx, email)
		c.finishSearch(ctx, seq, email, u, err)
	}()

	return done
}

func (c *Controller) finishSearch(ctx context.Context, seq uint64, email string, u user.User, err error) {
	var httpErr *httpclient.HTTPError
	outcome := outcomeSucceeded
	switch {
	case err == nil:
	case errors.As(err, &httpErr):
		outcome = outcomeServer
	default:
		outcome = outcomeTransport
		c.logger.Error("find user request failed", "error", err, "email", email)
	}

	applied := c.apply(func() bool {
		c.inFlight--
		if seq != c.searchSeq {
			return false
		}
		switch outcome {
		case outcomeSucceeded:
			found := u
			c.search.Result = &found
			c.search.Phase = PhaseSucceeded
			c.search.Message = successMessage(c.msgs.Found)
		case outcomeServer:
			c.search.Phase = PhaseFailed
			c.search.Message = errorMessage(fmt.Sprintf(c.msgs.ServerError, httpErr.Message))
		default:
			c.search.Phase = PhaseFailed
			c.search.Message = errorMessage(c.msgs.ConnectionError)
		}
		return true
	})

	if !applied {
		c.logger.Info("dropping superseded search response", "outcome", outcome, "email", email)
		recordSubmission(ctx, FormSearch, outcomeStale)
		return
	}
	recordSubmission(ctx, FormSearch, outcome)

	var evErr error
	switch outcome {
	case outcomeSucceeded:
		evErr = c.events.UserFound(ctx, u)
	case outcomeServer:
		evErr = c.events.SubmissionFailed(ctx, Failure{Form: FormSearch, Kind: FailureServer, Status: httpErr.StatusCode, Reason: httpErr.Message})
	default:
		evErr = c.events.SubmissionFailed(ctx, Failure{Form: FormSearch, Kind: FailureTransport})
	}
	if evErr != nil {
		c.logger.Error("failed to publish search outcome", "error", evErr, "outcome", outcome)
	}
}

// rejectCreate fails the create form without a network call. A submission
// already in flight keeps the form loading until its response lands.
func (c *Controller) rejectCreate(text string) {
	c.update(func() {
		c.create.Message = errorMessage(text)
		if c.create.Phase != PhaseSubmitting {
			c.create.Phase = PhaseFailed
		}
	})
}

func (c *Controller) rejectSearch(text string) {
	c.update(func() {
		c.search.Message = errorMessage(text)
		if c.search.Phase != PhaseSubmitting {
			c.search.Phase = PhaseFailed
		}
	})
}

// allow fails open: a broken limiter never blocks the console.
func (c *Controller) allow(ctx context.Context, form string) bool {
	if c.limiter == nil {
		return true
	}
	ok, err := c.limiter.Allow(ctx, c.key)
	if err != nil {
		c.logger.Error("submission limiter failed", "error", err, "form", form)
		return true
	}
	return ok
}

func (c *Controller) update(mutate func()) {
	c.apply(func() bool {
		mutate()
		return true
	})
}

// apply runs mutate under the lock. Listeners are notified, outside the lock,
// only when mutate reports a change.
func (c *Controller) apply(mutate func() bool) bool {
	c.mu.Lock()
	if !mutate() {
		c.mu.Unlock()
		return false
	}
	c.version++
	snap := c.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return true
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version: c.version,
		Create:  c.create,
		Search:  c.search,
	}
	if c.search.Result != nil {
		r := *c.search.Result
		snap.Search.Result = &r
	}
	return snap
}
