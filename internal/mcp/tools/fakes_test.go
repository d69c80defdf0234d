package tools

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/job-discovery/internal/domain"
	"github.com/honeycarbs/job-discovery/internal/domain/job"
)

// pagedProvider serves fixed pages keyed by page number
type pagedProvider struct {
	mu    sync.Mutex
	pages map[int][]domain.JobOffer
	calls []domain.SearchCriteria
}

func (p *pagedProvider) Name() string  { return "paged" }
func (p *pagedProvider) Shape() string { return "structured" }

func (p *pagedProvider) Search(_ context.Context, c domain.SearchCriteria) (job.Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, c)
	offers := p.pages[c.Page]
	return job.Page{Offers: offers, RawCount: len(offers)}, nil
}

func (p *pagedProvider) Probe(context.Context) (domain.Health, error) {
	return domain.Health{Available: true, Status: 200, Detail: "reachable"}, nil
}

func (p *pagedProvider) searchCalls() []domain.SearchCriteria {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.SearchCriteria(nil), p.calls...)
}

type recordingExporter struct {
	mu      sync.Mutex
	target  SheetTarget
	offers  []domain.JobOffer
	cleared bool
	err     error
}

func (e *recordingExporter) ExportOffers(_ context.Context, target SheetTarget, offers []domain.JobOffer, clearTab bool) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return 0, e.err
	}
	e.target, e.offers, e.cleared = target, offers, clearTab
	return len(offers), nil
}

func offersWithIDs(ids ...string) []domain.JobOffer {
	out := make([]domain.JobOffer, len(ids))
	for i, id := range ids {
		out[i] = domain.JobOffer{
			ID:           id,
			Title:        fmt.Sprintf("Go Developer %s", id),
			CompanyName:  "Acme",
			Location:     "Madrid",
			Description:  "Sin descripción.",
			URL:          "https://jobs.example.com/" + id,
			Technologies: []string{},
			Modality:     domain.ModalityOnsite,
		}
	}
	return out
}

func newTestService(t *testing.T, provider job.Provider) job.Service {
	t.Helper()
	svc, err := job.NewService(job.WithProvider(provider))
	require.NoError(t, err)
	return svc
}
