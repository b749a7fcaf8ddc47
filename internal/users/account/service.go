// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/taibuivan/erapp/internal/platform/validate"
	"github.com/taibuivan/erapp/internal/users/auth"
	"github.com/taibuivan/erapp/pkg/pointer"
)

// phoneRegex accepts digits with optional leading + and common separators.
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

// # Service Layer

// Service orchestrates profile reads and updates.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	Name             *string
	BloodGroup       *string
	Address          *string
	Allergies        *string
	EmergencyContact *auth.EmergencyContact
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

Description: Fetches the existing user state, validates and overrides the
provided fields, and synchronizes the change to persistent storage.
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	validator := &validate.Validator{}

	if input.Name != nil {
		input.Name = pointer.To(strings.TrimSpace(*input.Name))
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, auth.MaxNameLength)
	}
	if bloodGroup := pointer.Val(input.BloodGroup); bloodGroup != "" {
		validator.OneOf(FieldBloodGroup, bloodGroup, BloodGroups...)
	}
	validator.MaxLen(FieldAddress, pointer.Val(input.Address), 500)
	validator.MaxLen(FieldAllergies, pointer.Val(input.Allergies), 500)
	if contact := input.EmergencyContact; contact != nil {
		validator.MaxLen(FieldEmergencyContactName, contact.Name, auth.MaxNameLength)
		validator.Custom(FieldEmergencyContactPhone,
			contact.Phone != "" && !phoneRegex.MatchString(contact.Phone),
			"Must be a valid phone number")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	user.Name = pointer.Fallback(input.Name, user.Name)
	user.BloodGroup = pointer.Fallback(input.BloodGroup, user.BloodGroup)
	user.Address = pointer.Fallback(input.Address, user.Address)
	user.Allergies = pointer.Fallback(input.Allergies, user.Allergies)
	user.EmergencyContact = pointer.Fallback(input.EmergencyContact, user.EmergencyContact)

	if err := service.accountRepository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.String("user_id", userID))

	return user, nil
}
