package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/job-discovery/internal/domain"
	"github.com/honeycarbs/job-discovery/internal/mcp/tools"
)

var offerHeader = []any{"ID", "Title", "Company", "Location", "Modality", "Salary", "Technologies", "URL", "Description"}

// sheetWriter is the subset of pkg/sheets.Client used for exports
type sheetWriter interface {
	Append(ctx context.Context, spreadsheetID, range_ string, rows [][]any) (int, error)
	Replace(ctx context.Context, spreadsheetID, tab string, rows [][]any) (int, error)
}

type sheetsExporter struct {
	client sheetWriter
}

func (e *sheetsExporter) ExportOffers(ctx context.Context, target tools.SheetTarget, offers []domain.JobOffer, clearTab bool) (int, error) {
	if e == nil || e.client == nil {
		return 0, fmt.Errorf("sheets: client not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)")
	}

	tab := target.Tab
	if tab == "" {
		tab = "Sheet1"
	}

	rows := offersToRows(offers)
	if clearTab {
		written, err := e.client.Replace(ctx, target.SpreadsheetID, tab, append([][]any{offerHeader}, rows...))
		if err != nil {
			return 0, err
		}
		// the header is not an offer
		return max(written-1, 0), nil
	}

	return e.client.Append(ctx, target.SpreadsheetID, tab+"!A1", rows)
}

func offersToRows(offers []domain.JobOffer) [][]any {
	rows := make([][]any, len(offers))
	for i, o := range offers {
		rows[i] = []any{
			o.ID,
			o.Title,
			o.CompanyName,
			o.Location,
			string(o.Modality),
			o.Salary,
			strings.Join(o.Technologies, ", "),
			o.URL,
			o.Description,
		}
	}
	return rows
}
