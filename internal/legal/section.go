// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package legal implements the legal-term search and curation pipeline.

It owns two record kinds and the services that operate on them:

  - Corpus: the canonical [Section] records (Indian Penal Code summaries),
    stored in PostgreSQL, cached in Redis, mirrored by an embedded dataset.
  - Ledger: [UnaddedTerm] rows counting free-text searches awaiting curation.

# Architecture

  - Corpus / Ledger: single-store services with bounded timeouts.
  - SearchEngine: free-text substring matching over the working corpus.
  - Curation: the only component that writes across corpus and ledger.
  - Handler: the JSON HTTP surface mounted at /api/legal.
*/
package legal

import (
	"strings"
	"time"
)

// # Categories

// Category is the fixed classification of a legal section.
type Category string

const (
	CategoryGeneral            Category = "General"
	CategoryWomenSafety        Category = "Women Safety"
	CategoryChildSafety        Category = "Child Safety"
	CategoryElderlySafety      Category = "Elderly Safety"
	CategoryRoadSafety         Category = "Road Safety"
	CategoryCyberSafety        Category = "Cyber Safety"
	CategoryIPC                Category = "IPC"
	CategoryCrPC               Category = "CrPC"
	CategoryCrimesAgainstBody  Category = "Crimes against Human Body"
	CategoryCrimesAgainstProp  Category = "Crimes against Property"
	CategoryTrafficOffenses    Category = "Traffic Offenses"
	CategoryCrimesAgainstWomen Category = "Crimes against Women"
	CategoryEconomicOffenses   Category = "Economic Offenses"
)

// Categories lists every accepted [Category] in declaration order.
var Categories = []Category{
	CategoryGeneral, CategoryWomenSafety, CategoryChildSafety, CategoryElderlySafety,
	CategoryRoadSafety, CategoryCyberSafety, CategoryIPC, CategoryCrPC,
	CategoryCrimesAgainstBody, CategoryCrimesAgainstProp, CategoryTrafficOffenses,
	CategoryCrimesAgainstWomen, CategoryEconomicOffenses,
}

// Valid reports whether c belongs to the fixed enumeration.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// categoryNames returns the enumeration as plain strings for validators.
func categoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}

// # Domain Entities

// Section is one legal provision in the corpus.
//
// ID is assigned by the store. ExternalID ("ipc-302") is the stable reference
// used for interlinking and by curators.
type Section struct {
	ID               string    `json:"_id,omitempty"`
	ExternalID       string    `json:"id"`
	Code             string    `json:"code"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Punishment       string    `json:"punishment,omitempty"`
	Category         Category  `json:"category"`
	Keywords         []string  `json:"keywords"`
	EmergencyActions []string  `json:"emergencyActions"`
	RelatedSections  []string  `json:"relatedSections"`
	RelatedLaws      []string  `json:"relatedLaws"`
	CreatedAt        time.Time `json:"createdAt,omitzero"`
	UpdatedAt        time.Time `json:"updatedAt,omitzero"`
}

// Matches reports whether the lowercased query q is a substring of any
// keyword, the title, or the description. Only case is folded.
func (s *Section) Matches(q string) bool {
	for _, keyword := range s.Keywords {
		if strings.Contains(strings.ToLower(keyword), q) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(s.Title), q) ||
		strings.Contains(strings.ToLower(s.Description), q)
}

// HasKeyword reports whether keyword is already stored on the section.
// The comparison is exact: stored keywords are already canonical.
func (s *Section) HasKeyword(keyword string) bool {
	for _, existing := range s.Keywords {
		if existing == keyword {
			return true
		}
	}
	return false
}

// # Search Output

// Source tells where a working corpus came from.
type Source string

const (
	SourceStore    Source = "store"
	SourceFallback Source = "fallback"
)

// SearchResult is computed per query and never persisted.
type SearchResult struct {
	Sections         []*Section `json:"sections"`
	Summary          string     `json:"summary"`
	EmergencyActions []string   `json:"emergencyActions"`
	RelatedLaws      []string   `json:"relatedLaws"`
	Source           Source     `json:"source"`
}

// # Field Identifiers

const (
	FieldTerm           = "term"
	FieldQuery          = "q"
	FieldExistingCaseID = "existingCaseId"
	FieldCaseTitle      = "caseTitle"
	FieldID             = "id"
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldCategory       = "category"
)
