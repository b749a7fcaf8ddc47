// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

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

// # User Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.BloodGroup,
		&user.Address,
		&user.Allergies,
		&user.EmergencyContact.Name,
		&user.EmergencyContact.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on a duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		schema.UserAccount.Table, userColumns,
	)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		string(user.Role),
		user.BloodGroup,
		user.Address,
		user.Allergies,
		user.EmergencyContact.Name,
		user.EmergencyContact.Phone,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		wrapped := dberr.Wrap(err, "create_user")
		if apperr.IsCode(wrapped, apperr.CodeConflict) {
			return apperr.Conflict("User already exists")
		}
		return wrapped
	}

	return nil
}

// FindByID retrieves a user by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.ID, id)
}

// FindByEmail retrieves a user by email. Emails are stored lowercased.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.Email, strings.ToLower(email))
}

func (repository *PostgresUserRepository) findOne(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.UserAccount.Table, column)

	user, err := scanUser(repository.pool.QueryRow(context, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_failed: %w", dberr.Wrap(err, "find_user"))
	}

	return user, nil
}

/*
UpdateProfile syncs the mutable profile columns.

Description: Email, role and password are never touched here.
*/
func (repository *PostgresUserRepository) UpdateProfile(context context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		t.Table,
		t.Name, t.BloodGroup, t.Address, t.Allergies,
		t.EmergencyContactName, t.EmergencyContactPhone, t.UpdatedAt,
		t.ID,
	)

	user.UpdatedAt = time.Now().UTC()
	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.BloodGroup,
		user.Address,
		user.Allergies,
		user.EmergencyContact.Name,
		user.EmergencyContact.Phone,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "update_user_profile")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// UpdateCredentials replaces the password hash and role of an existing account.
func (repository *PostgresUserRepository) UpdateCredentials(context context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1`,
		t.Table, t.Password, t.Role, t.UpdatedAt, t.ID,
	)

	user.UpdatedAt = time.Now().UTC()
	tag, err := repository.pool.Exec(context, query, user.ID, user.PasswordHash, string(user.Role), user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_user_credentials")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
List returns one page of accounts, newest first.

Description: COUNT(*) OVER() carries the total on every row so a single
round-trip serves both the page and its pagination metadata.
*/
func (repository *PostgresUserRepository) List(context context.Context, limit, offset int) ([]*User, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.CreatedAt, schema.UserAccount.ID,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	total := 0

	for rows.Next() {
		user := &User{}
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.Name,
			&user.Role,
			&user.BloodGroup,
			&user.Address,
			&user.Allergies,
			&user.EmergencyContact.Name,
			&user.EmergencyContact.Phone,
			&user.CreatedAt,
			&user.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_users_rows")
	}

	// An offset past the end yields no rows and therefore no window total.
	if len(users) == 0 && offset > 0 {
		count, err := repository.Count(context)
		if err != nil {
			return nil, 0, err
		}
		total = count
	}

	return users, total, nil
}

// Delete removes an account permanently.
func (repository *PostgresUserRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// Count returns the number of accounts.
func (repository *PostgresUserRepository) Count(context context.Context) (int, error) {
	var count int
	err := repository.pool.QueryRow(context, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.UserAccount.Table)).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_users")
	}
	return count, nil
}
