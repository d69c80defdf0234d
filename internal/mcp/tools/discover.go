package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-discovery/internal/domain"
	"github.com/honeycarbs/job-discovery/internal/domain/criteria"
	"github.com/honeycarbs/job-discovery/internal/domain/job"
	"github.com/honeycarbs/job-discovery/pkg/logging"
)

// DiscoverJobsParams defines the arguments for the discover_jobs tool
type DiscoverJobsParams struct {
	UserID          string   `json:"user_id,omitempty" jsonschema:"Authenticated user whose stored skills and location fill empty fields"`
	Skills          []string `json:"skills,omitempty" jsonschema:"Skill keywords"`
	Keyword         string   `json:"keyword,omitempty" jsonschema:"Free-text keyword, comma separated terms allowed"`
	Location        string   `json:"location,omitempty" jsonschema:"Country name, ISO code or free-text region"`
	ContractType    string   `json:"contract_type,omitempty" jsonschema:"full_time, part_time, freelance, internship, temporary or any"`
	ExperienceLevel string   `json:"experience_level,omitempty" jsonschema:"entry, junior, mid, senior, lead or any"`
	MaxAgeDays      int      `json:"max_age_days,omitempty" jsonschema:"Only offers posted within this many days (default 60)"`
	Limit           int      `json:"limit,omitempty" jsonschema:"Page size between 1 and 100"`
	Broad           bool     `json:"broad,omitempty" jsonschema:"Allow a search with no keywords and no filters"`
}

// DiscoverJobsResult is one page of a discovery session
type DiscoverJobsResult struct {
	SessionID string            `json:"session_id" jsonschema:"Pass to next_page or export_offers"`
	Offers    []domain.JobOffer `json:"offers" jsonschema:"Offers new to this session"`
	Exhausted bool              `json:"exhausted" jsonschema:"True when next_page will return nothing more"`
}

// NextPageParams defines the arguments for the next_page tool
type NextPageParams struct {
	SessionID string `json:"session_id" jsonschema:"Session returned by discover_jobs"`
}

type discoveryTools struct {
	svc      job.Service
	sessions *SessionRegistry
	logger   *logging.Logger
}

// WithDiscovery registers the discover_jobs and next_page tools
func WithDiscovery(svc job.Service) Option {
	return func(reg *registry) {
		handler := discoveryTools{svc: svc, sessions: reg.sessions, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "discover_jobs",
			Description: "Search recent job offers and start a paginated discovery session",
		}, handler.discover)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "next_page",
			Description: "Load the next page of a discovery session, skipping offers already returned",
		}, handler.nextPage)
	}
}

func (t discoveryTools) discover(ctx context.Context, _ *sdkmcp.CallToolRequest, params DiscoverJobsParams) (*sdkmcp.CallToolResult, DiscoverJobsResult, error) {
	in := criteria.Input{
		Skills:          params.Skills,
		Keyword:         params.Keyword,
		Location:        params.Location,
		ContractType:    params.ContractType,
		ExperienceLevel: params.ExperienceLevel,
		MaxAgeDays:      params.MaxAgeDays,
		Limit:           params.Limit,
		Broad:           params.Broad,
	}

	var session *job.Session
	if params.UserID != "" {
		session = t.svc.NewSessionForUser(ctx, params.UserID, in)
	} else {
		session = t.svc.NewSession(in)
	}

	offers := session.Next(ctx)
	result := DiscoverJobsResult{
		SessionID: t.sessions.Add(session),
		Offers:    offers,
		Exhausted: session.Exhausted(),
	}

	t.logger.Info("discover_jobs",
		"session_id", result.SessionID,
		"offers", len(offers),
		"exhausted", result.Exhausted,
	)

	return textResult(fmt.Sprintf("found %d offer(s) in session %s (exhausted=%t)", len(offers), result.SessionID, result.Exhausted)), result, nil
}

func (t discoveryTools) nextPage(ctx context.Context, _ *sdkmcp.CallToolRequest, params NextPageParams) (*sdkmcp.CallToolResult, DiscoverJobsResult, error) {
	session, ok := t.sessions.Get(params.SessionID)
	if !ok {
		return nil, DiscoverJobsResult{}, fmt.Errorf("unknown or expired session %q", params.SessionID)
	}

	offers := session.Next(ctx)
	result := DiscoverJobsResult{
		SessionID: params.SessionID,
		Offers:    offers,
		Exhausted: session.Exhausted(),
	}

	t.logger.Debug("next_page", "session_id", params.SessionID, "offers", len(offers), "exhausted", result.Exhausted)

	return textResult(fmt.Sprintf("loaded %d new offer(s) (exhausted=%t)", len(offers), result.Exhausted)), result, nil
}
