package job

import (
	"context"
	"errors"

	"github.com/honeycarbs/job-discovery/internal/domain"
)

// PageState is the cursor of one discovery session. Values returned by
// Pager.Next are fresh copies; the input state is never mutated.
type PageState struct {
	SeenIDs   map[string]struct{}
	NextPage  int
	Exhausted bool
}

// NewPageState starts a session at page
func NewPageState(page int) PageState {
	return PageState{SeenIDs: make(map[string]struct{}), NextPage: max(page, 0)}
}

func (s PageState) clone() PageState {
	seen := make(map[string]struct{}, len(s.SeenIDs))
	for id := range s.SeenIDs {
		seen[id] = struct{}{}
	}
	return PageState{SeenIDs: seen, NextPage: s.NextPage, Exhausted: s.Exhausted}
}

// FetchFunc fetches exactly one page for the criteria
type FetchFunc func(ctx context.Context, criteria domain.SearchCriteria) (Page, error)

// Pager advances a session one structured page at a time and filters
// offers already seen in that session.
type Pager struct {
	fetch FetchFunc
}

// NewPager builds a Pager around fetch
func NewPager(fetch FetchFunc) *Pager {
	return &Pager{fetch: fetch}
}

// Next fetches state.NextPage for base. It returns the offers not seen before
// and the advanced state. On cancellation or a retryable error the returned
// state equals the input; a non-retryable error exhausts the session.
func (p *Pager) Next(ctx context.Context, base domain.SearchCriteria, state PageState) ([]domain.JobOffer, PageState, error) {
	if state.Exhausted {
		return []domain.JobOffer{}, state, nil
	}
	if err := ctx.Err(); err != nil {
		return []domain.JobOffer{}, state, err
	}

	page, err := p.fetch(ctx, base.WithPage(state.NextPage))
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || IsRetryable(err) {
			return []domain.JobOffer{}, state, err
		}
		next := state.clone()
		next.Exhausted = true
		return []domain.JobOffer{}, next, err
	}

	next := state.clone()
	fresh := make([]domain.JobOffer, 0, len(page.Offers))
	for _, offer := range page.Offers {
		if _, seen := next.SeenIDs[offer.ID]; seen {
			continue
		}
		next.SeenIDs[offer.ID] = struct{}{}
		fresh = append(fresh, offer)
	}

	next.NextPage++
	if page.RawCount == 0 || page.RawCount < base.Limit {
		next.Exhausted = true
	}

	return fresh, next, nil
}

// IsRetryable reports whether err declares itself transient
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	return errors.As(err, &r) && r.Retryable()
}
