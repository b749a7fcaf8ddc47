// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the private profile of the authenticated user: name,
medical details shown to responders, and the emergency contact.

# Architecture

  - Domain: Depends on the auth package for the [auth.User] entity.
  - Storage: Any [AccountRepository]; production wiring passes the
    PostgreSQL user repository.
*/
package account

import (
	"context"

	"github.com/taibuivan/erapp/internal/users/auth"
)

// BloodGroups lists the accepted blood group values.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// # Field Identifiers

const (
	FieldName                  = "name"
	FieldBloodGroup            = "bloodGroup"
	FieldAddress               = "address"
	FieldAllergies             = "allergies"
	FieldEmergencyContactName  = "emergencyContact.name"
	FieldEmergencyContactPhone = "emergencyContact.phone"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for profile data.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateProfile modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	UpdateProfile(context context.Context, user *auth.User) error
}
