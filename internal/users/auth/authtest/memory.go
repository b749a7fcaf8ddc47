// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package authtest provides an in-memory [auth.UserRepository] for tests of
// the packages that depend on user accounts.
package authtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/internal/users/auth"
)

// MemoryRepository is a concurrency-safe map-backed user store.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User

	// Err, when set, is returned by every call.
	Err error
}

// NewMemoryRepository returns an empty repository seeded with users.
func NewMemoryRepository(users ...*auth.User) *MemoryRepository {
	repo := &MemoryRepository{users: make(map[string]*auth.User)}
	for _, user := range users {
		copied := *user
		repo.users[user.ID] = &copied
	}
	return repo
}

func (repo *MemoryRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return nil, repo.Err
	}
	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *MemoryRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return nil, repo.Err
	}
	for _, user := range repo.users {
		if user.Email == strings.ToLower(email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *MemoryRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return repo.Err
	}
	for _, existing := range repo.users {
		if existing.Email == user.Email {
			return apperr.Conflict("User already exists")
		}
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *MemoryRepository) UpdateProfile(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return repo.Err
	}
	existing, ok := repo.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	existing.Name = user.Name
	existing.BloodGroup = user.BloodGroup
	existing.Address = user.Address
	existing.Allergies = user.Allergies
	existing.EmergencyContact = user.EmergencyContact
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func (repo *MemoryRepository) UpdateCredentials(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return repo.Err
	}
	existing, ok := repo.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	existing.PasswordHash = user.PasswordHash
	existing.Role = user.Role
	return nil
}

func (repo *MemoryRepository) List(_ context.Context, limit, offset int) ([]*auth.User, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return nil, 0, repo.Err
	}
	all := make([]*auth.User, 0, len(repo.users))
	for _, user := range repo.users {
		copied := *user
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := len(all)
	if offset >= total {
		return []*auth.User{}, total, nil
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (repo *MemoryRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return repo.Err
	}
	if _, ok := repo.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.users, id)
	return nil
}

func (repo *MemoryRepository) Count(context.Context) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.Err != nil {
		return 0, repo.Err
	}
	return len(repo.users), nil
}

var _ auth.UserRepository = (*MemoryRepository)(nil)
