// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"errors"
	"time"
)

// # Corpus Data Access

// SectionRepository defines the data access contract for legal sections.
type SectionRepository interface {

	/*
		List returns every stored section ordered by title.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Section: Every section, possibly empty
		  - error: StoreUnavailable when the store cannot be reached
	*/
	List(context context.Context) ([]*Section, error)

	/*
		FindByID returns the section with the given internal identifier.

		Returns:
		  - *Section: Hydrated entity
		  - error: NotFound when absent
	*/
	FindByID(context context.Context, id string) (*Section, error)

	/*
		FindByExternalID returns the section with the given external identifier.

		Returns:
		  - *Section: Hydrated entity
		  - error: NotFound when absent
	*/
	FindByExternalID(context context.Context, externalID string) (*Section, error)

	/*
		Create persists a new section. ID and timestamps are set by the caller.

		Returns:
		  - error: Conflict when the external identifier is taken
	*/
	Create(context context.Context, section *Section) error

	/*
		AppendKeyword adds keyword to the section's keyword list when it is
		not already present. The check and the write are one statement.

		Returns:
		  - bool: true when the keyword was appended
		  - error: NotFound when no section has this id, or persistence failures
	*/
	AppendKeyword(context context.Context, id, keyword string) (bool, error)

	// Upsert inserts a section or, when the external identifier exists,
	// overwrites its content while keeping any curated keywords.
	Upsert(context context.Context, section *Section) error

	// DeleteAll removes every section and reports how many were removed.
	DeleteAll(context context.Context) (int64, error)

	// Count returns the number of stored sections.
	Count(context context.Context) (int, error)
}

// # Ledger Data Access

// TermRepository defines the data access contract for the unadded-term ledger.
type TermRepository interface {

	/*
		Track records one more search for term.

		Description: Inserts a new entry with count 1 or, when the term is
		already present, increments its count and refreshes LastSearched.
		The whole operation is a single atomic statement.

		Parameters:
		  - context: context.Context
		  - id: string (Used only when a new entry is created)
		  - term: string (Canonical form)
		  - at: time.Time

		Returns:
		  - *UnaddedTerm: The entry after the write
		  - error: Persistence failures
	*/
	Track(context context.Context, id, term string, at time.Time) (*UnaddedTerm, error)

	// List returns every entry ranked by count then recency, both descending.
	List(context context.Context) ([]*UnaddedTerm, error)

	// FindByID returns the entry with the given identifier or NotFound.
	FindByID(context context.Context, id string) (*UnaddedTerm, error)

	// Delete removes the entry with the given identifier or returns NotFound.
	Delete(context context.Context, id string) error

	// Count returns the number of ledger entries.
	Count(context context.Context) (int, error)
}

// # Corpus Cache

// ErrCacheMiss is returned by [SectionCache.Get] when nothing is cached.
var ErrCacheMiss = errors.New("legal: section cache miss")

// SectionCache holds a read-through copy of the full section listing.
type SectionCache interface {
	Get(context context.Context) ([]*Section, error)
	Set(context context.Context, sections []*Section) error
	Invalidate(context context.Context) error
}
