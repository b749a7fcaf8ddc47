// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package admin implements the administrator console: dashboard counters,
// the user directory and account removal.
//
// # Architecture
//
// The console owns no storage. It reads accounts through [UserStore] (the
// auth repository) and the legal counters through [Counter] (the corpus and
// the term ledger), so it can be wired without importing their internals.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/internal/users/auth"
	"github.com/taibuivan/erapp/pkg/pagination"
	"github.com/taibuivan/erapp/pkg/uuid"
)

// # Dependencies

// UserStore is the subset of [auth.UserRepository] the console needs.
type UserStore interface {
	FindByID(context context.Context, id string) (*auth.User, error)
	List(context context.Context, limit, offset int) ([]*auth.User, int, error)
	Delete(context context.Context, id string) error
	Count(context context.Context) (int, error)
}

// Counter reports the size of a collection.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Stats is the dashboard summary.
type Stats struct {
	TotalUsers    int `json:"totalUsers"`
	UnaddedTerms  int `json:"unaddedTerms"`
	LegalSections int `json:"legalSections"`
}

// Service implements the console use cases.
type Service struct {
	users    UserStore
	terms    Counter
	sections Counter
	logger   *slog.Logger
}

// NewService constructs a new console [Service].
func NewService(users UserStore, terms Counter, sections Counter, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		terms:    terms,
		sections: sections,
		logger:   logger,
	}
}

// # Dashboard

// Stats returns the user, unresolved-term and section counts.
func (service *Service) Stats(ctx context.Context) (*Stats, error) {
	totalUsers, err := service.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count_users_failed: %w", err)
	}

	unaddedTerms, err := service.terms.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count_terms_failed: %w", err)
	}

	legalSections, err := service.sections.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count_sections_failed: %w", err)
	}

	return &Stats{
		TotalUsers:    totalUsers,
		UnaddedTerms:  unaddedTerms,
		LegalSections: legalSections,
	}, nil
}

// # User Directory

/*
ListUsers returns one page of accounts, newest first.

Returns:
  - []*auth.User: The page (never nil)
  - int: Total number of accounts
  - error: Retrieval failures
*/
func (service *Service) ListUsers(ctx context.Context, params pagination.Params) ([]*auth.User, int, error) {
	users, total, err := service.users.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list_users_failed: %w", err)
	}
	if users == nil {
		users = []*auth.User{}
	}
	return users, total, nil
}

/*
DeleteUser removes an account on behalf of an administrator.

Administrators cannot remove themselves or another administrator.

Returns:
  - error: apperr.NotFound, apperr.Forbidden or persistence failures
*/
func (service *Service) DeleteUser(ctx context.Context, actorID, targetID string) error {

	// ── 1. Lookup ────────────────────────────────────────────────────────
	if !uuid.IsValid(targetID) {
		return apperr.NotFound("User")
	}

	target, err := service.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	// ── 2. Guards ────────────────────────────────────────────────────────
	if target.ID == actorID {
		return apperr.Forbidden("Cannot delete your own account")
	}
	if target.IsAdmin() {
		return apperr.Forbidden("Cannot delete admin account")
	}

	// ── 3. Removal ───────────────────────────────────────────────────────
	if err := service.users.Delete(ctx, target.ID); err != nil {
		return err
	}

	service.logger.Info("user_deleted_by_admin",
		slog.String("actor_id", actorID),
		slog.String("user_id", target.ID),
	)
	return nil
}
