package job

import (
	"context"
	"errors"
	"sync"

	"github.com/honeycarbs/job-discovery/internal/domain"
	"github.com/honeycarbs/job-discovery/pkg/logging"
)

// Session is one discovery session. Calls to Next are serialized.
type Session struct {
	mu       sync.Mutex
	criteria domain.SearchCriteria
	state    PageState
	offers   []domain.JobOffer
	pager    *Pager
	logger   *logging.Logger
}

// Next fetches the next page and returns only offers new to this session.
// Failures are logged and yield an empty slice.
func (s *Session) Next(ctx context.Context) []domain.JobOffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.state.NextPage
	fresh, next, err := s.pager.Next(ctx, s.criteria, s.state)
	s.state = next
	if err != nil {
		fields := append([]any{"page", page, "exhausted", next.Exhausted, "error", err}, diagnostics(err)...)
		if errors.Is(err, context.Canceled) {
			s.logger.Info("discovery cancelled", fields...)
		} else {
			s.logger.Warn("discovery degraded to empty result", fields...)
		}
		return []domain.JobOffer{}
	}

	s.offers = append(s.offers, fresh...)
	return fresh
}

// Offers returns every offer collected so far, in arrival order
func (s *Session) Offers() []domain.JobOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.JobOffer{}, s.offers...)
}

// Exhausted reports whether further Next calls can return anything
func (s *Session) Exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Exhausted
}

// Criteria returns the normalized criteria of the session
func (s *Session) Criteria() domain.SearchCriteria {
	return s.criteria.WithPage(s.criteria.Page)
}
