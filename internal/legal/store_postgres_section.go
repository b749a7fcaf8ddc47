// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/internal/platform/database/schema"
	"github.com/taibuivan/erapp/internal/platform/dberr"
)

// # PostgreSQL Repositories

// sectionRepository implements [SectionRepository] using pgx.
type sectionRepository struct {
	pool *pgxpool.Pool
}

// NewSectionRepository constructs a PostgreSQL backed corpus store.
func NewSectionRepository(pool *pgxpool.Pool) SectionRepository {
	return &sectionRepository{pool: pool}
}

// sectionColumns is the shared SELECT list, in [scanSection] order.
var sectionColumns = strings.Join(schema.LegalSection.Columns(), ", ")

// scanSection hydrates a section from a row selected with [sectionColumns].
func scanSection(row pgx.Row) (*Section, error) {
	section := &Section{}
	var externalID *string
	err := row.Scan(
		&section.ID,
		&externalID,
		&section.Code,
		&section.Title,
		&section.Description,
		&section.Punishment,
		&section.Category,
		&section.Keywords,
		&section.EmergencyActions,
		&section.RelatedSections,
		&section.RelatedLaws,
		&section.CreatedAt,
		&section.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if externalID != nil {
		section.ExternalID = *externalID
	}
	return section, nil
}

// nullable maps an empty external identifier to SQL NULL so the unique
// constraint only applies to sections that carry one.
func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// nonNil keeps TEXT[] columns NOT NULL when a slice was never populated.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// # Section Repository Implementation

/*
List returns the full corpus ordered by title.

Description: The corpus is small (hundreds of rows at most) so the whole
table is returned in one round-trip for in-memory matching.
*/
func (repository *sectionRepository) List(context context.Context) ([]*Section, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		sectionColumns, schema.LegalSection.Table,
		schema.LegalSection.Title, schema.LegalSection.ID,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sections")
	}
	defer rows.Close()

	sections := make([]*Section, 0)
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_section")
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_sections_rows")
	}

	return sections, nil
}

// FindByID retrieves one section by its internal UUID.
func (repository *sectionRepository) FindByID(context context.Context, id string) (*Section, error) {
	return repository.findOne(context, schema.LegalSection.ID, id)
}

// FindByExternalID retrieves one section by its external reference (e.g. "ipc-302").
func (repository *sectionRepository) FindByExternalID(context context.Context, externalID string) (*Section, error) {
	return repository.findOne(context, schema.LegalSection.ExternalID, externalID)
}

func (repository *sectionRepository) findOne(context context.Context, column, value string) (*Section, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		sectionColumns, schema.LegalSection.Table, column,
	)

	section, err := scanSection(repository.pool.QueryRow(context, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Section")
		}
		return nil, dberr.Wrap(err, "find_section")
	}

	return section, nil
}

/*
Create inserts a brand-new section row.

Returns:
  - error: apperr.Conflict when the external identifier already exists
*/
func (repository *sectionRepository) Create(context context.Context, section *Section) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		schema.LegalSection.Table, sectionColumns,
	)

	_, err := repository.pool.Exec(context, query,
		section.ID,
		nullable(section.ExternalID),
		section.Code,
		section.Title,
		section.Description,
		section.Punishment,
		string(section.Category),
		nonNil(section.Keywords),
		nonNil(section.EmergencyActions),
		nonNil(section.RelatedSections),
		nonNil(section.RelatedLaws),
		section.CreatedAt,
		section.UpdatedAt,
	)

	if err != nil {
		wrapped := dberr.Wrap(err, "create_section")
		if apperr.IsCode(wrapped, apperr.CodeConflict) {
			return apperr.Conflict(fmt.Sprintf("Section with id %q already exists", section.ExternalID))
		}
		return wrapped
	}

	return nil
}

// appendKeywordQuery locks the target row, appends the keyword unless it is
// already present, and reports whether the row exists and whether it grew.
var appendKeywordQuery = fmt.Sprintf(`
	WITH target AS (
		SELECT %[4]s, $2::text = ANY(%[2]s) AS present
		FROM %[1]s WHERE %[4]s = $1
		FOR UPDATE
	), appended AS (
		UPDATE %[1]s AS stored
		SET %[2]s = array_append(stored.%[2]s, $2::text), %[3]s = now()
		FROM target
		WHERE stored.%[4]s = target.%[4]s AND NOT target.present
		RETURNING stored.%[4]s
	)
	SELECT EXISTS (SELECT 1 FROM target), EXISTS (SELECT 1 FROM appended)`,
	schema.LegalSection.Table, schema.LegalSection.Keywords,
	schema.LegalSection.UpdatedAt, schema.LegalSection.ID,
)

/*
AppendKeyword appends keyword unless it is already present.

Description: The row lock and the membership guard run in one statement,
so two curators linking the same term cannot produce a duplicate.

Returns:
  - error: apperr.NotFound when no section has this id
*/
func (repository *sectionRepository) AppendKeyword(context context.Context, id, keyword string) (bool, error) {
	var found, appended bool
	err := repository.pool.QueryRow(context, appendKeywordQuery, id, keyword).Scan(&found, &appended)
	if err != nil {
		return false, dberr.Wrap(err, "append_keyword")
	}

	if !found {
		return false, apperr.NotFound("Section")
	}

	return appended, nil
}

// upsertSectionQuery inserts by external id. On conflict it overwrites the
// descriptive fields and merges incoming keywords after the stored ones.
var upsertSectionQuery = fmt.Sprintf(`
	INSERT INTO %[1]s AS existing (%[2]s)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (%[3]s) DO UPDATE SET
		%[4]s = EXCLUDED.%[4]s,
		%[5]s = EXCLUDED.%[5]s,
		%[6]s = EXCLUDED.%[6]s,
		%[7]s = EXCLUDED.%[7]s,
		%[8]s = EXCLUDED.%[8]s,
		%[9]s = existing.%[9]s || ARRAY(
			SELECT k FROM unnest(EXCLUDED.%[9]s) AS k
			WHERE NOT (k = ANY(existing.%[9]s))
		),
		%[10]s = EXCLUDED.%[10]s,
		%[11]s = EXCLUDED.%[11]s,
		%[12]s = EXCLUDED.%[12]s,
		%[13]s = EXCLUDED.%[13]s`,
	schema.LegalSection.Table, sectionColumns, schema.LegalSection.ExternalID,
	schema.LegalSection.Code, schema.LegalSection.Title, schema.LegalSection.Description,
	schema.LegalSection.Punishment, schema.LegalSection.Category, schema.LegalSection.Keywords,
	schema.LegalSection.EmergencyActions, schema.LegalSection.RelatedSections,
	schema.LegalSection.RelatedLaws, schema.LegalSection.UpdatedAt,
)

/*
Upsert writes a section keyed by its external identifier.

Description: Used by dataset import. Descriptive fields are overwritten
from the incoming record; keywords added by curation since the previous
import are preserved and the incoming keywords are merged after them.
*/
func (repository *sectionRepository) Upsert(context context.Context, section *Section) error {
	_, err := repository.pool.Exec(context, upsertSectionQuery,
		section.ID,
		nullable(section.ExternalID),
		section.Code,
		section.Title,
		section.Description,
		section.Punishment,
		string(section.Category),
		nonNil(section.Keywords),
		nonNil(section.EmergencyActions),
		nonNil(section.RelatedSections),
		nonNil(section.RelatedLaws),
		section.CreatedAt,
		section.UpdatedAt,
	)

	return dberr.Wrap(err, "upsert_section")
}

// DeleteAll truncates the corpus. Used by a replacing import.
func (repository *sectionRepository) DeleteAll(context context.Context) (int64, error) {
	tag, err := repository.pool.Exec(context, fmt.Sprintf(`DELETE FROM %s`, schema.LegalSection.Table))
	if err != nil {
		return 0, dberr.Wrap(err, "delete_sections")
	}
	return tag.RowsAffected(), nil
}

// Count returns the corpus size.
func (repository *sectionRepository) Count(context context.Context) (int, error) {
	var count int
	err := repository.pool.QueryRow(context, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.LegalSection.Table)).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_sections")
	}
	return count, nil
}
