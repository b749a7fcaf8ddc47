// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email (case-insensitive).

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Returns:
		  - error: apperr.Conflict when the email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		UpdateProfile persists the mutable profile fields (name, medical
		details, emergency contact) and refreshes UpdatedAt.

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateProfile(context context.Context, user *User) error

	// UpdateCredentials replaces the password hash and role. Used by the
	// operator CLI to (re)provision an administrator.
	UpdateCredentials(context context.Context, user *User) error

	/*
		List returns accounts newest first, with the total count.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*User: One page of accounts
		  - int: Total number of accounts
		  - error: Retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*User, int, error)

	// Delete removes the account permanently, or returns apperr.NotFound.
	Delete(context context.Context, id string) error

	// Count returns the number of accounts.
	Count(context context.Context) (int, error)
}
