package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-discovery/internal/domain"
)

// SheetTarget names the destination of an export
type SheetTarget struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name, Sheet1 when empty"`
}

// OffersExporter writes offers to a spreadsheet and reports how many rows were written
type OffersExporter interface {
	ExportOffers(ctx context.Context, target SheetTarget, offers []domain.JobOffer, clearTab bool) (int, error)
}

// ExportOffersParams defines the arguments for the export_offers tool
type ExportOffersParams struct {
	SessionID string      `json:"session_id" jsonschema:"Discovery session whose collected offers are exported"`
	Sheet     SheetTarget `json:"sheet" jsonschema:"Destination sheet information"`
	ClearTab  bool        `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab before writing"`
}

// ExportOffersResult describes the summary returned after export
type ExportOffersResult struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Target tab name"`
	WrittenRows   int    `json:"written_rows" jsonschema:"How many rows were written"`
	CompletedAt   string `json:"completed_at" jsonschema:"RFC 3339 timestamp when export finished"`
	Message       string `json:"message,omitempty" jsonschema:"Optional status message"`
}

type exportTool struct {
	exporter OffersExporter
	sessions *SessionRegistry
	now      func() time.Time
}

// WithExportOffers registers the export_offers tool
func WithExportOffers(exporter OffersExporter) Option {
	return func(reg *registry) {
		handler := exportTool{exporter: exporter, sessions: reg.sessions, now: time.Now}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "export_offers",
			Description: "Export every offer collected by a discovery session to Google Sheets",
		}, handler.handle)
	}
}

func (t exportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params ExportOffersParams) (*sdkmcp.CallToolResult, ExportOffersResult, error) {
	result := ExportOffersResult{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           params.Sheet.Tab,
	}

	if params.Sheet.SpreadsheetID == "" {
		return nil, result, fmt.Errorf("sheet.spreadsheet_id is required")
	}

	session, ok := t.sessions.Get(params.SessionID)
	if !ok {
		return nil, result, fmt.Errorf("unknown or expired session %q", params.SessionID)
	}

	offers := session.Offers()
	if len(offers) == 0 {
		result.CompletedAt = t.now().UTC().Format(time.RFC3339)
		result.Message = "no offers to export"
		return textResult(result.Message), result, nil
	}

	written, err := t.exporter.ExportOffers(ctx, params.Sheet, offers, params.ClearTab)
	if err != nil {
		return nil, result, fmt.Errorf("export offers: %w", err)
	}

	result.WrittenRows = written
	result.CompletedAt = t.now().UTC().Format(time.RFC3339)
	result.Message = fmt.Sprintf("successfully exported %d row(s)", written)
	return textResult(result.Message), result, nil
}
