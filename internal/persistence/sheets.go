package persistence

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// rowAppender appends one row to a spreadsheet range
type rowAppender interface {
	AppendRow(ctx context.Context, spreadsheetID, writeRange string, row []any) error
}

// sheetsAPI adapts the generated Sheets client to rowAppender
type sheetsAPI struct {
	svc *sheets.Service
}

func (a sheetsAPI) AppendRow(ctx context.Context, spreadsheetID, writeRange string, row []any) error {
	values := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := a.svc.Spreadsheets.Values.Append(spreadsheetID, writeRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// SheetsSink appends records as rows of a Google spreadsheet
type SheetsSink struct {
	api           rowAppender
	spreadsheetID string
	writeRange    string
}

// NewSheetsSink builds a sink authenticated with a service-account credentials file.
// An empty credentials path falls back to application default credentials.
func NewSheetsSink(ctx context.Context, spreadsheetID, writeRange, credentialsFile string) (*SheetsSink, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if writeRange == "" {
		writeRange = "Sheet1!A1"
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &SheetsSink{api: sheetsAPI{svc: svc}, spreadsheetID: spreadsheetID, writeRange: writeRange}, nil
}

// Name implements Sink.
func (s *SheetsSink) Name() string { return "Google Sheets" }

// Append implements Sink.
func (s *SheetsSink) Append(ctx context.Context, rec *Record) error {
	row, err := Row(rec)
	if err != nil {
		return err
	}
	if err := s.api.AppendRow(ctx, s.spreadsheetID, s.writeRange, row); err != nil {
		return fmt.Errorf("failed to append row to spreadsheet: %w", err)
	}
	return nil
}
