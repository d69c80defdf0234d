package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Client struct {
	service *sheets.Service
}

type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	} else if len(cfg.CredentialsJSON) > 0 {
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	} else {
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// Append adds rows after the last table row found in range_ and returns how many rows were written
func (c *Client) Append(ctx context.Context, spreadsheetID, range_ string, rows [][]any) (int, error) {
	if c == nil || c.service == nil {
		return 0, fmt.Errorf("sheets: service is nil")
	}

	resp, err := c.service.Spreadsheets.Values.Append(spreadsheetID, range_, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: append %s: %w", range_, err)
	}

	if resp.Updates != nil {
		return int(resp.Updates.UpdatedRows), nil
	}
	return len(rows), nil
}

// Replace clears every value of tab and writes rows starting at A1
func (c *Client) Replace(ctx context.Context, spreadsheetID, tab string, rows [][]any) (int, error) {
	if c == nil || c.service == nil {
		return 0, fmt.Errorf("sheets: service is nil")
	}

	if _, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, tab, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return 0, fmt.Errorf("sheets: clear %s: %w", tab, err)
	}

	resp, err := c.service.Spreadsheets.Values.Update(spreadsheetID, tab+"!A1", &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: update %s: %w", tab, err)
	}

	return int(resp.UpdatedRows), nil
}
