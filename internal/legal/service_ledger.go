// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/internal/platform/constants"
	"github.com/taibuivan/erapp/internal/platform/validate"
	"github.com/taibuivan/erapp/pkg/textnorm"
	"github.com/taibuivan/erapp/pkg/uuid"
)

// # Ledger Service

// Ledger maintains the frequency table of searched terms awaiting curation.
type Ledger struct {
	repo         TermRepository
	logger       *slog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
	now          func() time.Time
}

// NewLedger constructs a [Ledger].
func NewLedger(repo TermRepository, logger *slog.Logger) *Ledger {
	return &Ledger{
		repo:         repo,
		logger:       logger,
		readTimeout:  constants.StoreReadTimeout,
		writeTimeout: constants.StoreWriteTimeout,
		now:          time.Now,
	}
}

/*
Track records one search for term.

Description: The term is trimmed and lowercased before storage. A known
term has its count incremented and LastSearched refreshed; an unknown term
starts at count 1. Both paths are one atomic store operation.

Returns:
  - *UnaddedTerm: The entry after the write
  - error: ValidationError for a blank term, or store failures
*/
func (service *Ledger) Track(ctx context.Context, term string) (*UnaddedTerm, error) {
	normalized := textnorm.Keyword(term)
	if normalized == "" {
		return nil, validate.RequiredError(FieldTerm, "Term is required")
	}

	writeCtx, cancel := context.WithTimeout(ctx, service.writeTimeout)
	defer cancel()

	entry, err := service.repo.Track(writeCtx, uuid.New(), normalized, service.now().UTC())
	if err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "term_tracked",
		slog.String("term", entry.Term),
		slog.Int("search_count", entry.SearchCount),
	)

	return entry, nil
}

// List returns every entry, most searched first, then most recent.
func (service *Ledger) List(ctx context.Context) ([]*UnaddedTerm, error) {
	readCtx, cancel := context.WithTimeout(ctx, service.readTimeout)
	defer cancel()

	return service.repo.List(readCtx)
}

// Get returns one entry. Identifiers that are not UUIDs cannot exist.
func (service *Ledger) Get(ctx context.Context, id string) (*UnaddedTerm, error) {
	if !uuid.IsValid(id) {
		return nil, apperr.NotFound("Term")
	}

	readCtx, cancel := context.WithTimeout(ctx, service.readTimeout)
	defer cancel()

	return service.repo.FindByID(readCtx, id)
}

// Remove deletes one entry or reports NotFound when it is already gone.
func (service *Ledger) Remove(ctx context.Context, id string) error {
	if !uuid.IsValid(id) {
		return apperr.NotFound("Term")
	}

	writeCtx, cancel := context.WithTimeout(ctx, service.writeTimeout)
	defer cancel()

	return service.repo.Delete(writeCtx, id)
}

// Count returns the number of pending terms for the admin dashboard.
func (service *Ledger) Count(ctx context.Context) (int, error) {
	readCtx, cancel := context.WithTimeout(ctx, service.readTimeout)
	defer cancel()

	return service.repo.Count(readCtx)
}
