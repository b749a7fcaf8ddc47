// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/internal/platform/database/schema"
	"github.com/taibuivan/erapp/internal/platform/dberr"
)

// termRepository implements [TermRepository] using pgx.
type termRepository struct {
	pool *pgxpool.Pool
}

// NewTermRepository constructs a PostgreSQL backed ledger store.
func NewTermRepository(pool *pgxpool.Pool) TermRepository {
	return &termRepository{pool: pool}
}

var termColumns = strings.Join(schema.LegalUnaddedTerm.Columns(), ", ")

func scanTerm(row pgx.Row) (*UnaddedTerm, error) {
	term := &UnaddedTerm{}
	err := row.Scan(
		&term.ID,
		&term.Term,
		&term.SearchCount,
		&term.LastSearched,
		&term.CreatedAt,
		&term.UpdatedAt,
	)
	return term, err
}

// trackTermQuery creates a ledger row or increments the existing one.
var trackTermQuery = fmt.Sprintf(`
	INSERT INTO %[1]s AS existing (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s)
	VALUES ($1, $2, 1, $3, $3, $3)
	ON CONFLICT (%[3]s) DO UPDATE SET
		%[4]s = existing.%[4]s + 1,
		%[5]s = EXCLUDED.%[5]s,
		%[7]s = EXCLUDED.%[7]s
	RETURNING %[8]s`,
	schema.LegalUnaddedTerm.Table, schema.LegalUnaddedTerm.ID, schema.LegalUnaddedTerm.Term,
	schema.LegalUnaddedTerm.SearchCount, schema.LegalUnaddedTerm.LastSearched,
	schema.LegalUnaddedTerm.CreatedAt, schema.LegalUnaddedTerm.UpdatedAt,
	termColumns,
)

/*
Track upserts a ledger entry for term.

Description: INSERT ... ON CONFLICT on the unique term column makes the
create-or-increment a single statement, so concurrent searches for the
same term never lose an increment or create a second row.
*/
func (repository *termRepository) Track(context context.Context, id, term string, at time.Time) (*UnaddedTerm, error) {
	entry, err := scanTerm(repository.pool.QueryRow(context, trackTermQuery, id, term, at))
	if err != nil {
		return nil, dberr.Wrap(err, "track_term")
	}

	return entry, nil
}

// List returns the ledger ranked for curators.
func (repository *termRepository) List(context context.Context) ([]*UnaddedTerm, error) {
	t := schema.LegalUnaddedTerm
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		termColumns, t.Table, t.SearchCount, t.LastSearched,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_terms")
	}
	defer rows.Close()

	terms := make([]*UnaddedTerm, 0)
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_term")
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_terms_rows")
	}

	return terms, nil
}

// FindByID retrieves one ledger entry.
func (repository *termRepository) FindByID(context context.Context, id string) (*UnaddedTerm, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		termColumns, schema.LegalUnaddedTerm.Table, schema.LegalUnaddedTerm.ID,
	)

	term, err := scanTerm(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Term")
		}
		return nil, dberr.Wrap(err, "find_term")
	}

	return term, nil
}

// Delete removes one ledger entry.
func (repository *termRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LegalUnaddedTerm.Table, schema.LegalUnaddedTerm.ID,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_term")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Term")
	}

	return nil
}

// Count returns the number of pending terms.
func (repository *termRepository) Count(context context.Context) (int, error) {
	var count int
	err := repository.pool.QueryRow(context, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.LegalUnaddedTerm.Table)).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_terms")
	}
	return count, nil
}
