// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/internal/platform/constants"
	"github.com/taibuivan/erapp/pkg/textnorm"
	"github.com/taibuivan/erapp/pkg/uuid"
)

// Defaults applied to sections created from a ledger term.
const (
	createdSectionDescription = "Created from unadded term"
	createdSectionAction      = "Contact authorities if needed"
	compositeTitleSeparator   = " - "
)

// # Corpus Service

// Corpus owns every read and write of [Section] records.
//
// Reads that feed search never fail: when the store is unreachable or
// empty the embedded fallback dataset is served instead. Writes always
// surface their failure.
type Corpus struct {
	repo         SectionRepository
	cache        SectionCache
	fallback     []*Section
	logger       *slog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
	now          func() time.Time
}

// NewCorpus constructs a [Corpus]. cache may be nil.
func NewCorpus(repo SectionRepository, cache SectionCache, fallback []*Section, logger *slog.Logger) *Corpus {
	return &Corpus{
		repo:         repo,
		cache:        cache,
		fallback:     fallback,
		logger:       logger,
		readTimeout:  constants.CorpusReadTimeout,
		writeTimeout: constants.StoreWriteTimeout,
		now:          time.Now,
	}
}

// # Reads

/*
ListSections returns the full corpus ordered by title.

Description: Served from the Redis listing cache when warm. Cache errors
are logged and bypassed; store errors are returned to the caller.
*/
func (service *Corpus) ListSections(ctx context.Context) ([]*Section, error) {

	// ── 1. Cache Lookup ───────────────────────────────────────────────
	if service.cache != nil {
		cached, err := service.cache.Get(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			service.logger.WarnContext(ctx, "corpus_cache_read_failed", slog.Any("error", err))
		}
	}

	// ── 2. Store Read ─────────────────────────────────────────────────
	readCtx, cancel := context.WithTimeout(ctx, service.readTimeout)
	defer cancel()

	sections, err := service.repo.List(readCtx)
	if err != nil {
		return nil, err
	}

	// ── 3. Cache Fill ─────────────────────────────────────────────────
	if service.cache != nil && len(sections) > 0 {
		if err := service.cache.Set(ctx, sections); err != nil {
			service.logger.WarnContext(ctx, "corpus_cache_write_failed", slog.Any("error", err))
		}
	}

	return sections, nil
}

/*
Browse serves the public section listing.

Description: Like [Corpus.ListSections] but an unreachable store degrades
to the fallback dataset instead of failing the request.
*/
func (service *Corpus) Browse(ctx context.Context) ([]*Section, Source, error) {
	sections, err := service.ListSections(ctx)
	if err == nil {
		return sections, SourceStore, nil
	}

	if apperr.IsCode(err, apperr.CodeStoreUnavailable) {
		service.logger.WarnContext(ctx, "corpus_fallback_engaged",
			slog.String("reason", "store_unavailable"),
			slog.String("path", "browse"),
		)
		return service.fallback, SourceFallback, nil
	}

	return nil, "", err
}

/*
LoadWorkingSet returns the corpus that search matches against.

Description: A live read under a bounded timeout. Any failure, or an empty
store, yields the embedded fallback dataset. This method never fails.
*/
func (service *Corpus) LoadWorkingSet(ctx context.Context) ([]*Section, Source) {
	sections, err := service.ListSections(ctx)

	switch {
	case err != nil:
		service.logger.WarnContext(ctx, "corpus_fallback_engaged",
			slog.String("reason", "read_failed"),
			slog.Any("error", err),
		)
	case len(sections) == 0:
		service.logger.InfoContext(ctx, "corpus_fallback_engaged", slog.String("reason", "empty_store"))
	default:
		return sections, SourceStore
	}

	return service.fallback, SourceFallback
}

/*
Resolve finds a section by reference using a fixed precedence.

Description:
 1. When ref is a UUID it is tried as the internal identifier.
 2. Otherwise, or when step 1 finds nothing, ref is tried as the external id.

Returns:
  - *Section: The resolved section
  - error: NotFound when both lookups miss; store errors otherwise
*/
func (service *Corpus) Resolve(ctx context.Context, ref string) (*Section, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperr.NotFound("Section")
	}

	readCtx, cancel := context.WithTimeout(ctx, service.readTimeout)
	defer cancel()

	// ── 1. Internal Identifier ────────────────────────────────────────
	if uuid.IsValid(ref) {
		section, err := service.repo.FindByID(readCtx, ref)
		if err == nil {
			return section, nil
		}
		if !apperr.IsNotFound(err) {
			return nil, err
		}
	}

	// ── 2. External Identifier ────────────────────────────────────────
	return service.repo.FindByExternalID(readCtx, ref)
}

// # Writes

/*
CreateSection builds and stores a new section for a ledger term.

Description: compositeTitle is split on the first " - " into code and
title ("IPC Section 999 - Test"). Without a separator the whole string is
the title and the code is left empty.
*/
func (service *Corpus) CreateSection(ctx context.Context, externalID, compositeTitle, term string) (*Section, error) {
	code, title := splitCompositeTitle(compositeTitle)

	now := service.now().UTC()
	section := &Section{
		ID:               uuid.New(),
		ExternalID:       strings.TrimSpace(externalID),
		Code:             code,
		Title:            title,
		Description:      createdSectionDescription,
		Category:         CategoryGeneral,
		Keywords:         textnorm.Keywords([]string{term}),
		EmergencyActions: []string{createdSectionAction},
		RelatedSections:  []string{},
		RelatedLaws:      []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if section.Title == "" {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldCaseTitle,
			Message: "This field is required",
		})
	}

	writeCtx, cancel := context.WithTimeout(ctx, service.writeTimeout)
	defer cancel()

	if err := service.repo.Create(writeCtx, section); err != nil {
		return nil, err
	}

	service.invalidate(ctx)
	service.logger.InfoContext(ctx, "section_created",
		slog.String("section_id", section.ID),
		slog.String("external_id", section.ExternalID),
	)

	return section, nil
}

/*
AppendKeyword adds keyword to section when it is not already present.

Description: The in-memory check short-circuits the common idempotent
case; the store re-checks membership in the same statement as the write.
section.Keywords is updated only when the store appended the keyword.

Returns:
  - error: apperr.NotFound when the section was removed after it was resolved
*/
func (service *Corpus) AppendKeyword(ctx context.Context, section *Section, keyword string) error {
	if section.HasKeyword(keyword) {
		return nil
	}

	writeCtx, cancel := context.WithTimeout(ctx, service.writeTimeout)
	defer cancel()

	appended, err := service.repo.AppendKeyword(writeCtx, section.ID, keyword)
	if err != nil {
		return err
	}

	if appended {
		section.Keywords = append(section.Keywords, keyword)
		service.invalidate(ctx)
	}

	return nil
}

// Count returns the corpus size for the admin dashboard.
func (service *Corpus) Count(ctx context.Context) (int, error) {
	readCtx, cancel := context.WithTimeout(ctx, service.readTimeout)
	defer cancel()

	return service.repo.Count(readCtx)
}

// # Import

// ImportReport summarizes a dataset import.
type ImportReport struct {
	Removed  int64 `json:"removed"`
	Imported int   `json:"imported"`
}

/*
Import writes a validated dataset into the store.

Description: Each section is upserted by external id. With replace set
the corpus is cleared first, mirroring a full resynchronization.
*/
func (service *Corpus) Import(ctx context.Context, sections []*Section, replace bool) (ImportReport, error) {
	var report ImportReport

	if replace {
		removed, err := service.repo.DeleteAll(ctx)
		if err != nil {
			return report, fmt.Errorf("legal_import_clear_failed: %w", err)
		}
		report.Removed = removed
	}

	now := service.now().UTC()
	for _, section := range sections {
		if section.ID == "" {
			section.ID = uuid.New()
		}
		section.CreatedAt, section.UpdatedAt = now, now

		if err := service.repo.Upsert(ctx, section); err != nil {
			return report, fmt.Errorf("legal_import_section_failed (%s): %w", section.ExternalID, err)
		}
		report.Imported++
	}

	service.invalidate(ctx)
	return report, nil
}

// invalidate drops the listing cache. A failure only delays freshness
// until the TTL expires, so it is logged rather than returned.
func (service *Corpus) invalidate(ctx context.Context) {
	if service.cache == nil {
		return
	}
	if err := service.cache.Invalidate(ctx); err != nil {
		service.logger.WarnContext(ctx, "corpus_cache_invalidate_failed", slog.Any("error", err))
	}
}

// splitCompositeTitle splits "<code> - <title>" on the first separator.
func splitCompositeTitle(composite string) (code, title string) {
	composite = strings.TrimSpace(composite)
	code, title, found := strings.Cut(composite, compositeTitleSeparator)
	if !found {
		return "", composite
	}
	return strings.TrimSpace(code), strings.TrimSpace(title)
}
