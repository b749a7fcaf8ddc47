// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LegalUnaddedTermTable represents the 'legal.unaddedterm' table
type LegalUnaddedTermTable struct {
	Table        string
	ID           string
	Term         string
	SearchCount  string
	LastSearched string
	CreatedAt    string
	UpdatedAt    string
}

// LegalUnaddedTerm is the schema definition for legal.unaddedterm
var LegalUnaddedTerm = LegalUnaddedTermTable{
	Table:        "legal.unaddedterm",
	ID:           "id",
	Term:         "term",
	SearchCount:  "searchcount",
	LastSearched: "lastsearched",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names in scan order
func (t LegalUnaddedTermTable) Columns() []string {
	return []string{t.ID, t.Term, t.SearchCount, t.LastSearched, t.CreatedAt, t.UpdatedAt}
}
