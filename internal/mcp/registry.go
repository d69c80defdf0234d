package mcp

import (
	"context"
	"errors"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-discovery/internal/domain/job"
	"github.com/honeycarbs/job-discovery/internal/mcp/tools"
	"github.com/honeycarbs/job-discovery/pkg/logging"
	n4j "github.com/honeycarbs/job-discovery/pkg/neo4j"
)

type ToolRegistry struct {
	logger   *logging.Logger
	sessions *tools.SessionRegistry
}

// Resources holds everything the tools need at runtime
type Resources struct {
	JobService  job.Service
	Exporter    tools.OffersExporter
	Neo4jClient *n4j.Client
}

// Close releases connections held by the resources
func (r *Resources) Close(ctx context.Context) error {
	if r == nil || r.Neo4jClient == nil {
		return nil
	}
	return r.Neo4jClient.Close(ctx)
}

func NewToolRegistry(logger *logging.Logger, sessionTTL time.Duration, maxSessions int) *ToolRegistry {
	return &ToolRegistry{
		logger:   logger,
		sessions: tools.NewSessionRegistry(sessionTTL, maxSessions),
	}
}

func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res Resources) error {
	if res.JobService == nil {
		return errors.New("mcp: job service is required")
	}

	opts := []tools.Option{
		tools.WithDiscovery(res.JobService),
		tools.WithProbeHealth(res.JobService),
	}
	if res.Exporter != nil {
		opts = append(opts, tools.WithExportOffers(res.Exporter))
	}

	tools.Register(server, r.sessions, r.logger, opts...)
	return nil
}
