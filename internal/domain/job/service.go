package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/honeycarbs/job-discovery/internal/domain"
	"github.com/honeycarbs/job-discovery/internal/domain/criteria"
	"github.com/honeycarbs/job-discovery/pkg/logging"
)

// ErrUnconstrainedCriteria is logged when criteria would match every recent job
// and the caller did not ask for a broad search.
var ErrUnconstrainedCriteria = errors.New("criteria have no keywords and no filters; set broad to search all recent jobs")

const (
	defaultMaxRetries    = 2
	defaultRetryDelay    = 250 * time.Millisecond
	defaultMaxRetryDelay = 2 * time.Second
)

// Service is the discovery entry point used by the presentation layer.
// None of its methods report request failures; they degrade to empty results.
type Service interface {
	// DiscoverJobs returns the first page for in
	DiscoverJobs(ctx context.Context, in criteria.Input) []domain.JobOffer
	// DiscoverForUser fills missing skills and location from the user's profile
	DiscoverForUser(ctx context.Context, userID string, in criteria.Input) []domain.JobOffer
	// NewSession starts a paginated discovery session without fetching
	NewSession(in criteria.Input) *Session
	// NewSessionForUser is NewSession after profile completion
	NewSessionForUser(ctx context.Context, userID string, in criteria.Input) *Session
	// ProbeHealth checks provider availability
	ProbeHealth(ctx context.Context) domain.Health
}

// Settings tunes retries and defaults
type Settings struct {
	MaxRetries    int
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
	DefaultLimit  int
}

// Option configures Service
type Option func(*config)

type config struct {
	provider Provider
	profiles ProfileStore
	logger   *logging.Logger
	settings Settings
}

// WithProvider sets the job provider
func WithProvider(provider Provider) Option {
	return func(c *config) {
		c.provider = provider
	}
}

// WithProfileStore sets the profile lookup used by DiscoverForUser
func WithProfileStore(profiles ProfileStore) Option {
	return func(c *config) {
		c.profiles = profiles
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRetry sets how often and how fast retryable provider errors are retried
func WithRetry(maxRetries int, delay, maxDelay time.Duration) Option {
	return func(c *config) {
		c.settings.MaxRetries = maxRetries
		c.settings.RetryDelay = delay
		c.settings.MaxRetryDelay = maxDelay
	}
}

// WithDefaultLimit sets the page size used when the caller leaves it unset
func WithDefaultLimit(limit int) Option {
	return func(c *config) {
		c.settings.DefaultLimit = limit
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		settings: Settings{MaxRetries: defaultMaxRetries},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return NewServiceWithDeps(cfg.provider, cfg.profiles, cfg.logger, cfg.settings)
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(provider Provider, profiles ProfileStore, logger *logging.Logger, settings Settings) (Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("job.Service: provider is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if settings.MaxRetries < 0 {
		settings.MaxRetries = 0
	}
	if settings.RetryDelay <= 0 {
		settings.RetryDelay = defaultRetryDelay
	}
	if settings.MaxRetryDelay <= settings.RetryDelay {
		settings.MaxRetryDelay = max(defaultMaxRetryDelay, 2*settings.RetryDelay)
	}

	s := &service{
		provider:     provider,
		profiles:     profiles,
		logger:       logger.With("provider", provider.Name(), "shape", provider.Shape()),
		defaultLimit: settings.DefaultLimit,
	}

	retry := retrypolicy.NewBuilder[Page]().
		HandleIf(func(_ Page, err error) bool {
			return err != nil && IsRetryable(err)
		}).
		WithMaxRetries(settings.MaxRetries).
		WithBackoff(settings.RetryDelay, settings.MaxRetryDelay).
		WithJitterFactor(0.1).
		ReturnLastFailure().
		OnRetry(func(e failsafe.ExecutionEvent[Page]) {
			s.logger.Debug("retrying provider search", "attempt", e.Attempts(), "error", e.LastError())
		}).
		Build()
	s.executor = failsafe.With[Page](retry)

	return s, nil
}

type service struct {
	provider     Provider
	profiles     ProfileStore
	logger       *logging.Logger
	executor     failsafe.Executor[Page]
	defaultLimit int
}

func (s *service) DiscoverJobs(ctx context.Context, in criteria.Input) []domain.JobOffer {
	return s.NewSession(in).Next(ctx)
}

func (s *service) DiscoverForUser(ctx context.Context, userID string, in criteria.Input) []domain.JobOffer {
	return s.NewSessionForUser(ctx, userID, in).Next(ctx)
}

func (s *service) NewSession(in criteria.Input) *Session {
	if in.Limit == 0 && s.defaultLimit > 0 {
		in.Limit = s.defaultLimit
	}
	c := criteria.Normalize(in)

	session := &Session{
		criteria: c,
		state:    NewPageState(c.Page),
		pager:    NewPager(s.fetch),
		logger:   s.logger,
	}
	if c.Unconstrained() && !c.Broad {
		s.logger.Warn("refusing discovery", "error", ErrUnconstrainedCriteria)
		session.state.Exhausted = true
	}
	return session
}

func (s *service) NewSessionForUser(ctx context.Context, userID string, in criteria.Input) *Session {
	if s.profiles != nil && userID != "" {
		user, err := s.profiles.FindUser(ctx, userID)
		if err != nil {
			s.logger.Warn("profile lookup failed, searching with the given input", "user_id", userID, "error", err)
		} else {
			in = criteria.WithProfile(in, user)
		}
	}
	return s.NewSession(in)
}

func (s *service) ProbeHealth(ctx context.Context) domain.Health {
	health, err := s.provider.Probe(ctx)
	if err != nil {
		s.logger.Warn("provider probe failed", append([]any{"error", err}, diagnostics(err)...)...)
		health.Available = false
	}
	return health
}

func (s *service) fetch(ctx context.Context, c domain.SearchCriteria) (Page, error) {
	return s.executor.WithContext(ctx).Get(func() (Page, error) {
		return s.provider.Search(ctx, c)
	})
}

func diagnostics(err error) []any {
	var d interface{ LogFields() []any }
	if errors.As(err, &d) {
		return d.LogFields()
	}
	return nil
}
