// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/internal/platform/validate"
)

// # Curation Service

// Curation resolves ledger entries by dismissing them or merging them into
// the corpus. It is the only component that writes to both stores.
type Curation struct {
	corpus *Corpus
	ledger *Ledger
	logger *slog.Logger
}

// NewCuration constructs a [Curation] over the two stores.
func NewCuration(corpus *Corpus, ledger *Ledger, logger *slog.Logger) *Curation {
	return &Curation{corpus: corpus, ledger: ledger, logger: logger}
}

// LinkInput carries an admin's merge decision.
type LinkInput struct {
	TermID string

	// TargetRef is an internal or external section identifier.
	TargetRef string

	// FallbackTitle, when set, creates the section if TargetRef resolves to
	// nothing. Format: "<code> - <title>".
	FallbackTitle string
}

// LinkResult reports which section absorbed the term.
type LinkResult struct {
	Section *Section `json:"section"`
	Created bool     `json:"created"`
}

// Ignore dismisses a ledger entry.
func (service *Curation) Ignore(ctx context.Context, termID string) error {
	if err := service.ledger.Remove(ctx, termID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "term_ignored", slog.String("term_id", termID))
	return nil
}

/*
Link merges a ledger term into a section.

Description:
 1. Load the ledger entry.
 2. Resolve the target section, creating it when a fallback title is given.
 3. Append the term as a keyword (idempotent).
 4. Remove the ledger entry.

The steps are not transactional. When step 4 fails after step 3 the
keyword stays in place and PartialCompletion is returned so the stale
entry can be cleaned up by hand.
*/
func (service *Curation) Link(ctx context.Context, input LinkInput) (*LinkResult, error) {
	validator := &validate.Validator{}
	validator.Required(FieldExistingCaseID, input.TargetRef)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 1. Ledger Entry ───────────────────────────────────────────────
	entry, err := service.ledger.Get(ctx, input.TermID)
	if err != nil {
		return nil, err
	}

	// ── 2. Target Section ─────────────────────────────────────────────
	result := &LinkResult{}
	result.Section, err = service.corpus.Resolve(ctx, input.TargetRef)

	switch {
	case err == nil:
	case apperr.IsNotFound(err) && strings.TrimSpace(input.FallbackTitle) != "":
		result.Section, err = service.corpus.CreateSection(ctx, input.TargetRef, input.FallbackTitle, entry.Term)
		if err != nil {
			return nil, err
		}
		result.Created = true
	case apperr.IsNotFound(err):
		return nil, apperr.NotFound("Existing case")
	default:
		return nil, err
	}

	// ── 3. Keyword Merge ──────────────────────────────────────────────
	if err := service.corpus.AppendKeyword(ctx, result.Section, entry.Term); err != nil {
		return nil, err
	}

	// ── 4. Ledger Cleanup ─────────────────────────────────────────────
	if err := service.ledger.Remove(ctx, entry.ID); err != nil {
		service.logger.ErrorContext(ctx, "term_link_partial",
			slog.String("term_id", entry.ID),
			slog.String("section_id", result.Section.ID),
			slog.Any("error", err),
		)
		return nil, apperr.PartialCompletion(
			"Keyword was added to the section but the term could not be removed from the list", err)
	}

	service.logger.InfoContext(ctx, "term_linked",
		slog.String("term", entry.Term),
		slog.String("section_id", result.Section.ID),
		slog.Bool("created", result.Created),
	)

	return result, nil
}
