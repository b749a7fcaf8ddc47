// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/erapp/internal/platform/validate"
	"github.com/taibuivan/erapp/pkg/textnorm"
)

//go:embed data/ipc_sections.yaml
var builtinDataset []byte

// sectionRecord is the on-disk shape of one dataset entry.
type sectionRecord struct {
	ID               string   `yaml:"id"`
	Code             string   `yaml:"code"`
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	Punishment       string   `yaml:"punishment"`
	Category         string   `yaml:"category"`
	Keywords         []string `yaml:"keywords"`
	EmergencyActions []string `yaml:"emergencyActions"`
	RelatedSections  []string `yaml:"relatedSections"`
	RelatedLaws      []string `yaml:"relatedLaws"`
}

// BuiltinDataset returns a fresh copy of the embedded fallback corpus.
func BuiltinDataset() ([]*Section, error) {
	return ParseDataset(bytes.NewReader(builtinDataset))
}

/*
ParseDataset decodes and validates a YAML section list.

Description: Unknown keys are rejected so that a typo in a curated file
fails loudly instead of silently dropping a field. Keywords are
canonicalized, and external identifiers must be unique within the file.

Returns:
  - []*Section: Sections ordered by title, without internal identifiers
  - error: Decode or validation failure naming the offending record
*/
func ParseDataset(reader io.Reader) ([]*Section, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var records []sectionRecord
	if err := decoder.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return []*Section{}, nil
		}
		return nil, fmt.Errorf("legal_dataset_decode_failed: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	sections := make([]*Section, 0, len(records))

	for index, record := range records {
		validator := &validate.Validator{}
		validator.Required(FieldID, record.ID).MaxLen(FieldID, record.ID, 64)
		validator.Required(FieldTitle, record.Title).MaxLen(FieldTitle, record.Title, 500)
		validator.Required(FieldDescription, record.Description)
		validator.OneOf(FieldCategory, record.Category, categoryNames()...)

		_, duplicate := seen[record.ID]
		validator.Custom(FieldID, duplicate, "Duplicate id in dataset")

		if err := validator.Err(); err != nil {
			return nil, fmt.Errorf("legal_dataset_record_%d_invalid (%s): %w", index, record.ID, err)
		}
		seen[record.ID] = struct{}{}

		sections = append(sections, record.toSection())
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Title < sections[j].Title
	})

	return sections, nil
}

func (record sectionRecord) toSection() *Section {
	return &Section{
		ExternalID:       record.ID,
		Code:             record.Code,
		Title:            record.Title,
		Description:      record.Description,
		Punishment:       record.Punishment,
		Category:         Category(record.Category),
		Keywords:         textnorm.Keywords(record.Keywords),
		EmergencyActions: orEmpty(record.EmergencyActions),
		RelatedSections:  orEmpty(record.RelatedSections),
		RelatedLaws:      orEmpty(record.RelatedLaws),
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
