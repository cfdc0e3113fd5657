package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads one worksheet of a Google spreadsheet. The first row holds the headers.
type SheetsSource struct {
	srv           *sheets.Service
	spreadsheetID string
	worksheet     string
	logger        *zap.Logger
}

// NewSheetsSource builds the Sheets client from ready-made client options
// (credentials file, token source or endpoint).
func NewSheetsSource(ctx context.Context, spreadsheetID, worksheet string, log *zap.Logger, opts ...option.ClientOption) (*SheetsSource, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SheetsSource{srv: srv, spreadsheetID: spreadsheetID, worksheet: worksheet, logger: log}, nil
}

func (s *SheetsSource) Fetch(ctx context.Context) (*models.RawTable, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, s.worksheet).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", s.worksheet, err)
	}
	raw, err := valuesToRaw(resp.Values)
	if err != nil {
		return nil, fmt.Errorf("worksheet %s: %w", s.worksheet, err)
	}
	s.logger.Info("worksheet loaded", zap.String("worksheet", s.worksheet), zap.Int("rows", len(raw.Rows)))
	return raw, nil
}

// Append writes the rows below the existing data, adding the header row to an empty worksheet.
// Cells are sent as text and interpreted by Sheets as if typed by a user.
func (s *SheetsSource) Append(ctx context.Context, raw *models.RawTable) (int, error) {
	if raw == nil || len(raw.Rows) == 0 {
		return 0, nil
	}
	existing, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, s.worksheet).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read worksheet %s: %w", s.worksheet, err)
	}

	var values [][]interface{}
	if len(existing.Values) == 0 {
		header := make([]interface{}, len(raw.Headers))
		for i, h := range raw.Headers {
			header[i] = h
		}
		values = append(values, header)
	}
	for i := range raw.Rows {
		row := make([]interface{}, len(raw.Headers))
		for col := range raw.Headers {
			row[col] = cellText(raw.Cell(i, col))
		}
		values = append(values, row)
	}

	_, err = s.srv.Spreadsheets.Values.Append(s.spreadsheetID, s.worksheet, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append to worksheet %s: %w", s.worksheet, err)
	}
	s.logger.Info("rows appended", zap.String("worksheet", s.worksheet), zap.Int("rows", len(raw.Rows)))
	return len(raw.Rows), nil
}

func valuesToRaw(values [][]interface{}) (*models.RawTable, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptySheet
	}
	raw := &models.RawTable{Headers: make([]string, len(values[0]))}
	for i, h := range values[0] {
		raw.Headers[i] = strings.TrimSpace(fmt.Sprint(h))
	}
	raw.Rows = values[1:]
	return raw, nil
}

func cellText(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
