package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-discovery/internal/domain"
	"github.com/honeycarbs/job-discovery/internal/domain/job"
)

// ProbeHealthParams takes no arguments
type ProbeHealthParams struct{}

// WithProbeHealth registers the probe_health tool
func WithProbeHealth(svc job.Service) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "probe_health",
			Description: "Check whether the job listings provider is reachable and accepts our credentials",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ProbeHealthParams) (*sdkmcp.CallToolResult, domain.Health, error) {
			health := svc.ProbeHealth(ctx)
			return textResult(fmt.Sprintf("available=%t: %s", health.Available, health.Detail)), health, nil
		})
	}
}
