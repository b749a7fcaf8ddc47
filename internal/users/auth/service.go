// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/internal/platform/sec"
	"github.com/taibuivan/erapp/internal/platform/validate"
	"github.com/taibuivan/erapp/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
}

// Session is the result of a successful registration or login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: New accounts always receive the user role. Administrators are
provisioned by the operator CLI only.

Returns:
  - *Session: Token and created entity
  - err: Validation, Conflict (email taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	validator.Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldPassword, input.Password, MaxPasswordLength)
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Fast path; the unique index still guards the race.
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("User already exists")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		Role:         sec.RoleUser,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))
	return service.issue(user)
}

// # Authentication Flow

/*
Login validates credentials and issues a bearer token.

Description: Every failure (unknown email, wrong password) returns the same
Unauthorized error to prevent account enumeration.
*/
func (service *Service) Login(context context.Context, email, password string) (*Session, error) {
	user, err := service.userRepository.FindByEmail(context, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	return service.issue(user)
}

func (service *Service) issue(user *User) (*Session, error) {
	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

// # Operator Provisioning

/*
EnsureAdmin creates an administrator or promotes and re-keys an existing
account with the same email.

Returns:
  - *User: The administrator account
  - bool: true when a new account was created
  - error: Validation or storage errors
*/
func (service *Service) EnsureAdmin(context context.Context, input RegisterInput) (*User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Admin"
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, false, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	existing, err := service.userRepository.FindByEmail(context, email)
	switch {
	case err == nil:
		existing.PasswordHash = hashedPassword
		existing.Role = sec.RoleAdmin
		if err := service.userRepository.UpdateCredentials(context, existing); err != nil {
			return nil, false, fmt.Errorf("auth_service_promote_admin_failed: %w", err)
		}
		return existing, false, nil
	case !apperr.IsNotFound(err):
		return nil, false, err
	}

	admin := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		Role:         sec.RoleAdmin,
	}
	if err := service.userRepository.Create(context, admin); err != nil {
		return nil, false, fmt.Errorf("auth_service_create_admin_failed: %w", err)
	}

	return admin, true, nil
}
