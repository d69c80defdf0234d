package job

import (
	"context"

	"github.com/honeycarbs/job-discovery/internal/domain"
)

// Provider represents an external job listings source
type Provider interface {
	// e.g. "theirstack"
	Name() string

	// Shape names the request layout, for diagnostics
	Shape() string

	// Search fetches exactly one page for the criteria
	Search(ctx context.Context, criteria domain.SearchCriteria) (Page, error)

	// Probe reports availability without running a search
	Probe(ctx context.Context) (domain.Health, error)
}

// Page is one provider page after normalization
type Page struct {
	Offers []domain.JobOffer
	// RawCount is the number of records the provider returned, including
	// ones the normalizer skipped or dropped. Exhaustion is judged on it.
	RawCount int
}
