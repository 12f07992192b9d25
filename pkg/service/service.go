// Package service orchestrates one import session: detect the format,
// extract the raw table, propose a mapping, then — once a human (or the
// auto flow) confirms the mapping — normalize and hand the rows to the
// store. The table and mapping are transient, owned by the session and
// discarded when it ends, success or cancel.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wealthwise/wealthwise/pkg/detect"
	"github.com/wealthwise/wealthwise/pkg/extract"
	"github.com/wealthwise/wealthwise/pkg/mapping"
	"github.com/wealthwise/wealthwise/pkg/models"
	"github.com/wealthwise/wealthwise/pkg/normalize"
	"github.com/wealthwise/wealthwise/pkg/store"
)

// sampleRowCount is how many rows the confirmation surface gets.
const sampleRowCount = 5

// ErrSessionNotFound means the session id is unknown: already
// committed, cancelled, or never created.
var ErrSessionNotFound = errors.New("import session not found")

// Service runs import sessions against a transaction store.
type Service struct {
	runner   *store.Runner
	logger   *log.Logger
	sessions sync.Map // id → *session
}

type session struct {
	id       string
	filename string
	format   detect.Format
	table    *models.GenericTable
	proposed []models.ColumnMapping
}

// Preview is the payload for the mapping confirmation surface.
type Preview struct {
	SessionID  string                 `json:"sessionId"`
	Filename   string                 `json:"filename"`
	Format     detect.Format          `json:"format"`
	Headers    []string               `json:"headers"`
	SampleRows []map[string]string    `json:"sampleRows"`
	Proposed   []models.ColumnMapping `json:"proposedMappings"`
	RowCount   int                    `json:"rowCount"`
}

// Outcome is what the user sees after a commit: how many rows made it,
// how many were rejected during normalization, and how many the store
// refused.
type Outcome struct {
	Imported    int `json:"imported"`
	Rejected    int `json:"rejected"`
	StoreFailed int `json:"storeFailed"`
	Total       int `json:"total"`
}

func New(st store.Store, logger *log.Logger) *Service {
	return &Service{
		runner: store.NewRunner(st, logger),
		logger: logger,
	}
}

// Begin classifies and extracts the file, proposes a mapping and parks
// everything in a new session. Nothing is written to the store; a
// failure here leaves no partial state.
func (s *Service) Begin(filename, contentType string, data []byte) (*Preview, error) {
	format, err := detect.Require(filename, contentType)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("detected file format", "format", format, "filename", filename)

	table, err := extract.Extract(format, data)
	if err != nil {
		return nil, err
	}

	sess := &session{
		id:       newSessionID(),
		filename: filename,
		format:   format,
		table:    table,
		proposed: mapping.Propose(table),
	}
	s.sessions.Store(sess.id, sess)

	s.logger.Info("import session started",
		"session_id", sess.id, "filename", filename, "format", format, "rows", len(table.Rows))

	return &Preview{
		SessionID:  sess.id,
		Filename:   filename,
		Format:     format,
		Headers:    table.Headers,
		SampleRows: table.SampleRows(sampleRowCount),
		Proposed:   sess.proposed,
		RowCount:   len(table.Rows),
	}, nil
}

// Commit validates the finalized mapping, normalizes the session's
// table and imports the result. The session is consumed either way; a
// nil mapping commits the engine's own proposal.
func (s *Service) Commit(ctx context.Context, sessionID string, finalized []models.ColumnMapping, accountID string) (*Outcome, error) {
	value, ok := s.sessions.LoadAndDelete(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess := value.(*session)

	if finalized == nil {
		finalized = sess.proposed
	}
	if err := mapping.Validate(finalized); err != nil {
		// Validation failure must not consume the session: the user
		// fixes the mapping and retries.
		s.sessions.Store(sessionID, sess)
		return nil, err
	}

	result := normalize.Normalize(sess.table, finalized)
	imported := s.runner.Import(ctx, accountID, result.Transactions)

	s.logger.Info("import session committed",
		"session_id", sessionID,
		"imported", imported.Created,
		"rejected", result.Rejected,
		"store_failed", imported.Failed)

	return &Outcome{
		Imported:    imported.Created,
		Rejected:    result.Rejected,
		StoreFailed: imported.Failed,
		Total:       result.Total,
	}, nil
}

// Cancel discards a session and its transient table.
func (s *Service) Cancel(sessionID string) {
	if _, ok := s.sessions.LoadAndDelete(sessionID); ok {
		s.logger.Debug("import session cancelled", "session_id", sessionID)
	}
}

// NormalizeAuto runs the full pipeline with the engine's own proposal
// and no store write. The CLI convert and plan flows use it; it refuses
// files whose proposal does not satisfy the required-field rule, since
// there is no human to fix the mapping.
func (s *Service) NormalizeAuto(filename, contentType string, data []byte) (*normalize.Result, error) {
	format, err := detect.Require(filename, contentType)
	if err != nil {
		return nil, err
	}

	table, err := extract.Extract(format, data)
	if err != nil {
		return nil, err
	}

	proposed := mapping.Propose(table)
	if err := mapping.Validate(proposed); err != nil {
		return nil, fmt.Errorf("%s needs manual mapping: %w", filename, err)
	}

	return normalize.Normalize(table, proposed), nil
}

func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(b)
}
