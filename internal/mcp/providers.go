package mcp

import (
	"context"

	"github.com/honeycarbs/job-discovery/internal/config"
	"github.com/honeycarbs/job-discovery/internal/domain/job"
	tsprovider "github.com/honeycarbs/job-discovery/internal/domain/job/providers/theirstack"
	"github.com/honeycarbs/job-discovery/internal/mcp/tools"
	storage "github.com/honeycarbs/job-discovery/internal/storage/neo4j"
	"github.com/honeycarbs/job-discovery/pkg/logging"
	n4j "github.com/honeycarbs/job-discovery/pkg/neo4j"
	"github.com/honeycarbs/job-discovery/pkg/sheets"
	"github.com/honeycarbs/job-discovery/pkg/theirstack"
)

// provideTheirStackConfig extracts TheirStack config from main config
func provideTheirStackConfig(cfg config.Config) theirstack.Config {
	return theirstack.Config{
		APIKey:        cfg.TheirStack.APIKey,
		BaseURL:       cfg.TheirStack.BaseURL,
		SearchTimeout: cfg.TheirStack.SearchTimeout,
		ProbeTimeout:  cfg.TheirStack.ProbeTimeout,
	}
}

func provideRequestShape(cfg config.Config) (tsprovider.Shape, error) {
	return tsprovider.ParseShape(cfg.TheirStack.RequestShape)
}

func provideTheirStackProvider(client *theirstack.Client, shape tsprovider.Shape, logger *logging.Logger) (*tsprovider.Provider, error) {
	return tsprovider.NewProvider(client, shape, logger)
}

// provideNeo4jClient returns nil when no URI is configured
func provideNeo4jClient(cfg config.Config) (*n4j.Client, error) {
	n4jCfg := n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	}
	if !n4jCfg.Enabled() {
		return nil, nil
	}
	return n4j.NewClient(n4jCfg)
}

func provideProfileStore(client *n4j.Client) job.ProfileStore {
	if client == nil {
		return nil
	}
	return storage.NewProfileStore(client)
}

func provideDiscoverySettings(cfg config.Config) job.Settings {
	return job.Settings{
		MaxRetries:    cfg.Discovery.MaxRetries,
		RetryDelay:    cfg.Discovery.RetryDelay,
		MaxRetryDelay: cfg.Discovery.MaxRetryDelay,
		DefaultLimit:  cfg.Discovery.DefaultLimit,
	}
}

// provideSheetsExporter returns an exporter that reports itself unconfigured
// when no credentials are set
func provideSheetsExporter(cfg config.Config) (tools.OffersExporter, error) {
	if cfg.SheetsCredentialsPath == "" {
		return &sheetsExporter{}, nil
	}
	client, err := sheets.NewClient(context.Background(), sheets.Config{CredentialsPath: cfg.SheetsCredentialsPath})
	if err != nil {
		return nil, err
	}
	return &sheetsExporter{client: client}, nil
}

func newResources(jobService job.Service, exporter tools.OffersExporter, neo4jClient *n4j.Client) *Resources {
	return &Resources{
		JobService:  jobService,
		Exporter:    exporter,
		Neo4jClient: neo4jClient,
	}
}
