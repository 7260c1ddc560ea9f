// Package sheets implements the repository on a Google Sheets spreadsheet,
// keeping row-for-row compatibility with the spreadsheet layout the
// original deployment used. Columns are read by position, so the column
// order of each tab is part of the contract:
//
//	Users:     email, displayName, conversationHandle, active
//	Responses: date, pollId, email, displayName, status, startTime,
//	           endTime, notes, respondedAt, conversationHandle
//	PollLog:   date, pollId, email, conversationHandle, sentAt, outcome, error
//
// The first row of each tab is a header and is skipped.
package sheets

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/availiq/availiq/pkg/domain/interfaces"
)

const (
	usersTab     = "Users"
	responsesTab = "Responses"
	pollLogTab   = "PollLog"
)

// Sheets is the Google Sheets repository backend
type Sheets struct {
	service       *sheetsapi.Service
	spreadsheetID string

	roster      *rosterRepository
	response    *responseRepository
	dispatchLog *dispatchLogRepository
}

var _ interfaces.Repository = &Sheets{}

// New creates a Sheets repository. credentialsFile points at a service
// account key; when empty, application default credentials are used.
func New(ctx context.Context, spreadsheetID, credentialsFile string) (*Sheets, error) {
	if spreadsheetID == "" {
		return nil, goerr.New("spreadsheet ID is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create sheets service", goerr.V("spreadsheetID", spreadsheetID))
	}

	s := &Sheets{
		service:       service,
		spreadsheetID: spreadsheetID,
	}
	s.roster = &rosterRepository{sheets: s}
	s.response = &responseRepository{sheets: s}
	s.dispatchLog = &dispatchLogRepository{sheets: s}

	return s, nil
}

func (s *Sheets) Roster() interfaces.RosterRepository {
	return s.roster
}

func (s *Sheets) Response() interfaces.ResponseRepository {
	return s.response
}

func (s *Sheets) DispatchLog() interfaces.DispatchLogRepository {
	return s.dispatchLog
}

func (s *Sheets) Close() error {
	return nil
}

// getRows returns all data rows of a tab (header excluded) in sheet order,
// which is append order for the log tabs.
func (s *Sheets) getRows(ctx context.Context, tab string) ([][]interface{}, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, tab).Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read sheet values", goerr.V("tab", tab))
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	return resp.Values[1:], nil
}

func (s *Sheets) appendRow(ctx context.Context, tab string, row []interface{}) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, tab, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return goerr.Wrap(err, "failed to append sheet row", goerr.V("tab", tab))
	}
	return nil
}

// updateRow overwrites one data row. rowIndex is zero-based over data rows,
// so the sheet row number accounts for the header.
func (s *Sheets) updateRow(ctx context.Context, tab string, rowIndex int, row []interface{}) error {
	sheetRow := rowIndex + 2
	rng := fmt.Sprintf("%s!A%d", tab, sheetRow)
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return goerr.Wrap(err, "failed to update sheet row", goerr.V("tab", tab), goerr.V("row", sheetRow))
	}
	return nil
}

// cell reads a positional column from a row, tolerating short rows
func cell(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	if s, ok := row[idx].(string); ok {
		return s
	}
	return fmt.Sprintf("%v", row[idx])
}
