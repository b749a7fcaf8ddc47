// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns the repositories query, so that
// SQL built with fmt.Sprintf never hard-codes identifiers twice.
package schema

// LegalSectionTable represents the 'legal.section' table
type LegalSectionTable struct {
	Table            string
	ID               string
	ExternalID       string
	Code             string
	Title            string
	Description      string
	Punishment       string
	Category         string
	Keywords         string
	EmergencyActions string
	RelatedSections  string
	RelatedLaws      string
	CreatedAt        string
	UpdatedAt        string
}

// LegalSection is the schema definition for legal.section
var LegalSection = LegalSectionTable{
	Table:            "legal.section",
	ID:               "id",
	ExternalID:       "externalid",
	Code:             "code",
	Title:            "title",
	Description:      "description",
	Punishment:       "punishment",
	Category:         "category",
	Keywords:         "keywords",
	EmergencyActions: "emergencyactions",
	RelatedSections:  "relatedsections",
	RelatedLaws:      "relatedlaws",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

// Columns returns all standard column names in scan order
func (t LegalSectionTable) Columns() []string {
	return []string{
		t.ID, t.ExternalID, t.Code, t.Title, t.Description, t.Punishment,
		t.Category, t.Keywords, t.EmergencyActions, t.RelatedSections,
		t.RelatedLaws, t.CreatedAt, t.UpdatedAt,
	}
}
