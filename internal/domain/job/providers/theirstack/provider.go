package theirstack

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/job-discovery/internal/domain"
	jobdomain "github.com/honeycarbs/job-discovery/internal/domain/job"
	"github.com/honeycarbs/job-discovery/pkg/logging"
	"github.com/honeycarbs/job-discovery/pkg/theirstack"
)

// searchClient describes the subset of the TheirStack client used by the provider.
type searchClient interface {
	Search(ctx context.Context, body theirstack.SearchRequest) (theirstack.Response, error)
	Probe(ctx context.Context) (theirstack.HealthStatus, error)
}

// Provider implements job.Provider using the TheirStack jobs API
type Provider struct {
	client     searchClient
	builder    Builder
	normalizer *Normalizer
}

// NewProvider builds a TheirStack provider emitting requests of the given shape
func NewProvider(client searchClient, shape Shape, logger *logging.Logger) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("theirstack provider: client is required")
	}
	return &Provider{
		client:     client,
		builder:    NewBuilder(shape),
		normalizer: NewNormalizer(logger),
	}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "theirstack"
}

// Shape returns the request shape used for searches
func (p *Provider) Shape() string {
	return string(p.builder.Shape())
}

// Search fetches one page for c and returns normalized offers
func (p *Provider) Search(ctx context.Context, c domain.SearchCriteria) (jobdomain.Page, error) {
	if p == nil || p.client == nil {
		return jobdomain.Page{}, fmt.Errorf("theirstack provider: client is nil")
	}

	resp, err := p.client.Search(ctx, p.builder.Build(c))
	if err != nil {
		return jobdomain.Page{}, err
	}

	batch := p.normalizer.Normalize(resp.Body)
	return jobdomain.Page{Offers: batch.Offers, RawCount: batch.Records}, nil
}

// Probe checks provider availability
func (p *Provider) Probe(ctx context.Context) (domain.Health, error) {
	if p == nil || p.client == nil {
		return domain.Health{Detail: "provider is not configured"}, fmt.Errorf("theirstack provider: client is nil")
	}

	status, err := p.client.Probe(ctx)
	if err != nil {
		health := domain.Health{Detail: err.Error()}
		var apiErr *theirstack.Error
		if errors.As(err, &apiErr) {
			health.Status = apiErr.StatusCode
		}
		return health, err
	}

	return domain.Health{
		Available: true,
		Status:    status.StatusCode,
		Detail:    "TheirStack API reachable",
	}, nil
}

var _ jobdomain.Provider = (*Provider)(nil)
