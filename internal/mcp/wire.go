//go:build wireinject
// +build wireinject

package mcp

import (
	"github.com/google/wire"

	"github.com/honeycarbs/job-discovery/internal/config"
	"github.com/honeycarbs/job-discovery/internal/domain/job"
	tsprovider "github.com/honeycarbs/job-discovery/internal/domain/job/providers/theirstack"
	"github.com/honeycarbs/job-discovery/pkg/logging"
	"github.com/honeycarbs/job-discovery/pkg/theirstack"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(cfg config.Config, logger *logging.Logger) (*Resources, error) {
	wire.Build(
		// Infrastructure - TheirStack
		provideTheirStackConfig,
		theirstack.NewClient,

		// Infrastructure - Neo4j (optional)
		provideNeo4jClient,
		provideProfileStore,

		// Providers
		provideRequestShape,
		provideTheirStackProvider,
		wire.Bind(new(job.Provider), new(*tsprovider.Provider)),

		// Services
		provideDiscoverySettings,
		job.NewServiceWithDeps,

		// Tool resources
		provideSheetsExporter,
		newResources,
	)

	return &Resources{}, nil
}
