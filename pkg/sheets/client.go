package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/itaoit/itstock-backend/pkg/config"
	"github.com/itaoit/itstock-backend/pkg/logger"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client wraps the Sheets v4 service with whole-tab operations. Every tab is
// treated as one table: first row headers, everything below data.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

// NewClient resolves credentials and builds the Sheets service.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logg *logger.Logger) (*Client, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	creds, source, err := ResolveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx, creds, option.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	if logg != nil {
		ctx = logg.WithField(ctx, "credential_source", string(source))
		logg.Info(ctx, "sheets client initialized")
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// SpreadsheetID returns the configured spreadsheet identity, used as a cache
// key component.
func (c *Client) SpreadsheetID() string {
	return c.spreadsheetID
}

// GetValues fetches the entire tab, header row included.
func (c *Client) GetValues(ctx context.Context, tab string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, tabRange(tab)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read tab %s: %w", tab, err)
	}
	return resp.Values, nil
}

// UpdateValues replaces the entire tab content with the given rows. The tab
// is cleared first so rows removed by the caller do not linger; between the
// clear and the update a concurrent reader can observe an empty tab, which
// matches the whole-tab-overwrite contract.
func (c *Client) UpdateValues(ctx context.Context, tab string, values [][]any) error {
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, tabRange(tab), &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear tab %s: %w", tab, err)
	}
	body := &gsheet.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, tabRange(tab), body).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write tab %s: %w", tab, err)
	}
	return nil
}

// AppendRow appends one row below the current data without reading the tab.
func (c *Client) AppendRow(ctx context.Context, tab string, row []any) error {
	return c.AppendRows(ctx, tab, [][]any{row})
}

// AppendRows appends several rows below the current data in one request, so
// the whole group lands or none of it does.
func (c *Client) AppendRows(ctx context.Context, tab string, rows [][]any) error {
	body := &gsheet.ValueRange{Values: rows}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, tabRange(tab), body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to tab %s: %w", tab, err)
	}
	return nil
}

// ListTabs returns the titles of all tabs in the spreadsheet.
func (c *Client) ListTabs(ctx context.Context) ([]string, error) {
	resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list tabs: %w", err)
	}
	titles := make([]string, 0, len(resp.Sheets))
	for _, sheet := range resp.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}
	return titles, nil
}

// AddTab creates a new tab with the given grid size.
func (c *Client) AddTab(ctx context.Context, title string, rows, cols int64) error {
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{
					Title: title,
					GridProperties: &gsheet.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add tab %s: %w", title, err)
	}
	return nil
}

// Ping verifies the spreadsheet is reachable with the resolved credentials.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ping spreadsheet: %w", err)
	}
	return nil
}

func tabRange(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}
