package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/loginflow/services/login-service/internal/identity"
	"github.com/vasapolrittideah/loginflow/services/login-service/internal/profile"
	"github.com/vasapolrittideah/loginflow/services/login-service/internal/session"
)

const (
	defaultDestination = "/"
	defaultSessionTTL  = 24 * time.Hour
)

// NavigationSignal tells the caller where to send the user after a successful
// reconciliation and which session now holds the merged record.
type NavigationSignal struct {
	Destination string
	SessionID   string
	ExpiresAt   time.Time
}

// Observer receives every state transition of every attempt.
type Observer func(attemptID string, from, to State)

// Orchestrator turns a provider sign-in into a persisted session record.
// It holds no per-attempt state and may be shared between goroutines; it
// does not serialize concurrent attempts for the same identity.
type Orchestrator struct {
	logger      *zerolog.Logger
	provider    identity.Provider
	profiles    profile.Client
	sessions    session.Store
	destination string
	sessionTTL  time.Duration
	observer    Observer
	now         func() time.Time
	newID       func() string
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithDestination sets the path emitted in the navigation signal.
func WithDestination(path string) Option {
	return func(o *Orchestrator) {
		if path != "" {
			o.destination = path
		}
	}
}

// WithSessionTTL sets how long persisted session records stay valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(o *Orchestrator) {
		if ttl > 0 {
			o.sessionTTL = ttl
		}
	}
}

// WithObserver registers fn to receive state transitions.
func WithObserver(fn Observer) Option {
	return func(o *Orchestrator) {
		o.observer = fn
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithIDGenerator replaces the generator used for new session ids.
func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) {
		o.newID = newID
	}
}

func NewOrchestrator(
	logger *zerolog.Logger,
	provider identity.Provider,
	profiles profile.Client,
	sessions session.Store,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		logger:      logger,
		provider:    provider,
		profiles:    profiles,
		sessions:    sessions,
		destination: defaultDestination,
		sessionTTL:  defaultSessionTTL,
		now:         time.Now,
		newID:       uuid.NewString,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Reconcile runs one attempt: validate, sign in, look the profile up, create
// it when absent, persist the merged record under sessionID and return the
// navigation signal. An empty sessionID starts a new session. creds is
// cleared before the first remote call, whatever the outcome.
//
// Every failure is a *Error whose Kind is one of the ErrXxx sentinels. No
// session record is written unless every earlier step succeeded.
func (o *Orchestrator) Reconcile(ctx context.Context, sessionID string, creds *Credentials) (*NavigationSignal, error) {
	a := &attempt{id: uuid.NewString(), orchestrator: o}

	if err := a.to(StateValidating); err != nil {
		return nil, err
	}

	email, password, ok := creds.take()
	if !ok {
		return nil, a.fail(ErrValidation, nil)
	}

	if err := a.to(StateAuthenticating); err != nil {
		return nil, err
	}

	id, err := o.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, a.fail(classifyProviderError(err), err)
	}
	if id == nil || id.SubjectID == "" || id.IDToken == "" {
		return nil, a.fail(ErrProvider, errInvalidProviderData)
	}

	if err := a.to(StateProfileLookup); err != nil {
		return nil, err
	}

	p, err := o.profiles.GetProfile(ctx, id.IDToken)
	if err != nil {
		return nil, a.fail(ErrProfileLookup, err)
	}

	created := false
	if p == nil {
		if err := a.to(StateProfileCreate); err != nil {
			return nil, err
		}

		p, err = o.profiles.CreateProfile(ctx, id.IDToken)
		if err != nil {
			return nil, a.fail(ErrProfileCreation, err)
		}
		if p == nil {
			return nil, a.fail(ErrProfileCreation, profile.ErrMissingProfile)
		}
		created = true
	}

	if err := a.to(StateSessionPersist); err != nil {
		return nil, err
	}

	if sessionID == "" {
		sessionID = o.newID()
	}

	now := o.now()
	record := &session.Record{
		ID:        sessionID,
		Identity:  *id,
		Profile:   *p,
		CreatedAt: now,
		ExpiresAt: now.Add(o.sessionTTL),
	}
	record.Identity.IDToken = ""

	// The write must finish once started, so it ignores caller cancellation.
	if err := o.sessions.Put(context.WithoutCancel(ctx), record); err != nil {
		return nil, a.fail(ErrSessionPersist, err)
	}

	if err := a.to(StateComplete); err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("attempt", a.id).
		Str("subject", id.SubjectID).
		Bool("profile_created", created).
		Msg("login reconciled")

	return &NavigationSignal{
		Destination: o.destination,
		SessionID:   sessionID,
		ExpiresAt:   record.ExpiresAt,
	}, nil
}

// classifyProviderError maps a provider failure onto the taxonomy.
func classifyProviderError(err error) error {
	var idErr *identity.Error
	if !errors.As(err, &idErr) {
		return ErrProvider
	}

	switch idErr.Reason {
	case identity.ReasonInvalidEmail:
		return ErrInvalidEmailFormat
	case identity.ReasonInvalidCredential:
		return ErrInvalidCredentials
	default:
		return ErrProvider
	}
}

type attempt struct {
	id           string
	state        State
	orchestrator *Orchestrator
}

func (a *attempt) to(next State) error {
	if !CanTransition(a.state, next) {
		return &Error{Kind: ErrProvider, State: a.state, Err: fmt.Errorf("%w: %s -> %s", errIllegalTransition, a.state, next)}
	}

	prev := a.state
	a.state = next

	a.orchestrator.logger.Debug().
		Str("attempt", a.id).
		Stringer("from", prev).
		Stringer("to", next).
		Msg("reconcile transition")

	if a.orchestrator.observer != nil {
		a.orchestrator.observer(a.id, prev, next)
	}

	return nil
}

func (a *attempt) fail(kind, cause error) error {
	failed := a.state
	_ = a.to(StateFailed)

	event := a.orchestrator.logger.Warn().
		Str("attempt", a.id).
		Stringer("state", failed).
		Str("kind", kind.Error())
	if cause != nil {
		event = event.AnErr("cause", cause)
	}
	event.Msg("login reconciliation failed")

	return &Error{Kind: kind, State: failed, Err: cause}
}
