// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/pkg/slice"
)

const summaryTemplate = "Based on your search for \"%s\", here are the relevant legal provisions under Indian law."

// genericEmergencyActions is used when the top match carries no actions.
var genericEmergencyActions = []string{
	"Call emergency services (100) immediately",
	"Do not disturb the crime scene",
	"Contact the nearest police station",
	"Seek medical attention if needed",
}

// WorkingSetLoader supplies the corpus that queries are matched against.
type WorkingSetLoader interface {
	LoadWorkingSet(ctx context.Context) ([]*Section, Source)
}

// TermTracker records searched terms.
type TermTracker interface {
	Track(ctx context.Context, term string) (*UnaddedTerm, error)
}

// # Search Engine

// SearchEngine resolves free-text queries against the working corpus.
type SearchEngine struct {
	corpus WorkingSetLoader
	ledger TermTracker
	logger *slog.Logger
}

// NewSearchEngine constructs a [SearchEngine].
func NewSearchEngine(corpus WorkingSetLoader, ledger TermTracker, logger *slog.Logger) *SearchEngine {
	return &SearchEngine{corpus: corpus, ledger: ledger, logger: logger}
}

/*
Search matches query against the working corpus.

Description: A section matches when the lowercased query is a substring of
one of its keywords, its title, or its description. Matches keep corpus
order. When track is set the query is recorded whether or not anything
matched; a tracking failure is logged and does not affect the result.

Returns:
  - *SearchResult: Matches and derived guidance
  - error: NoMatch for a blank query or when nothing matches
*/
func (engine *SearchEngine) Search(ctx context.Context, query string, track bool) (*SearchResult, error) {

	// ── 1. Blank Query ────────────────────────────────────────────────
	if strings.TrimSpace(query) == "" {
		return nil, apperr.NoMatch("No matching legal information found")
	}

	// ── 2. Matching ───────────────────────────────────────────────────
	q := strings.ToLower(query)
	corpus, source := engine.corpus.LoadWorkingSet(ctx)

	matches := slice.Filter(corpus, func(section *Section) bool {
		return section.Matches(q)
	})

	// ── 3. Tracking ───────────────────────────────────────────────────
	if track {
		if _, err := engine.ledger.Track(ctx, q); err != nil {
			engine.logger.WarnContext(ctx, "search_tracking_failed",
				slog.String("query", q),
				slog.Any("error", err),
			)
		}
	}

	if len(matches) == 0 {
		return nil, apperr.NoMatch("No matching legal information found")
	}

	// ── 4. Result ─────────────────────────────────────────────────────
	actions := matches[0].EmergencyActions
	if len(actions) == 0 {
		actions = genericEmergencyActions
	}

	return &SearchResult{
		Sections:         matches,
		Summary:          fmt.Sprintf(summaryTemplate, query),
		EmergencyActions: actions,
		RelatedLaws:      distinctCategories(matches),
		Source:           source,
	}, nil
}

// distinctCategories returns the categories of sections in first-seen order.
func distinctCategories(sections []*Section) []string {
	seen := make(map[Category]struct{}, len(sections))
	out := make([]string, 0, len(sections))

	for _, section := range sections {
		if _, ok := seen[section.Category]; ok {
			continue
		}
		seen[section.Category] = struct{}{}
		out = append(out, string(section.Category))
	}

	return out
}
