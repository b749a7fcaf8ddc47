// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity layer.

It defines the [User] entity shared by the account and admin packages, and
the registration and login flows that issue RS256 bearer tokens.

# Architecture

  - Service: Register, Login and the operator-only EnsureAdmin.
  - Repository: [UserRepository] over users.account in PostgreSQL.
  - Security: bcrypt password hashes and RSA-signed JWTs from platform/sec.
*/
package auth

import (
	"time"

	"github.com/taibuivan/erapp/internal/platform/sec"
)

// # Domain Entities

// EmergencyContact is the person to call on the user's behalf.
type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// User represents a registered member or administrator.
type User struct {
	ID               string           `json:"_id"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"` // Never serialized.
	Name             string           `json:"name"`
	Role             sec.UserRole     `json:"role"`
	BloodGroup       string           `json:"bloodGroup"`
	Address          string           `json:"address"`
	Allergies        string           `json:"allergies"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == sec.RoleAdmin
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldToken    = "token"
	FieldUser     = "user"
)
