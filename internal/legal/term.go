// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import "time"

// UnaddedTerm is one ledger entry: a distinct search term awaiting curation.
//
// Term is stored canonical (trimmed, lowercased) and is unique across the
// ledger. SearchCount starts at 1 and only grows until the entry is removed.
type UnaddedTerm struct {
	ID           string    `json:"_id"`
	Term         string    `json:"term"`
	SearchCount  int       `json:"searchCount"`
	LastSearched time.Time `json:"lastSearched"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
