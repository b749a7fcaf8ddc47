// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/erapp/internal/admin"
	"github.com/taibuivan/erapp/internal/platform/apperr"
	"github.com/taibuivan/erapp/internal/platform/ctxutil"
	"github.com/taibuivan/erapp/internal/platform/sec"
	"github.com/taibuivan/erapp/internal/users/auth"
	"github.com/taibuivan/erapp/internal/users/auth/authtest"
	"github.com/taibuivan/erapp/pkg/pagination"
)

const (
	adminID  = "0192f0c4-0000-7000-8000-00000000ad01"
	otherAdm = "0192f0c4-0000-7000-8000-00000000ad02"
	ashaID   = "0192f0c4-0000-7000-8000-0000000000a1"
	raviID   = "0192f0c4-0000-7000-8000-0000000000a2"
)

type fixedCounter struct {
	n   int
	err error
}

func (c fixedCounter) Count(context.Context) (int, error) { return c.n, c.err }

func newRepo() *authtest.MemoryRepository {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return authtest.NewMemoryRepository(
		&auth.User{ID: adminID, Email: "admin@erapp.com", Name: "Admin", Role: sec.RoleAdmin, CreatedAt: base},
		&auth.User{ID: otherAdm, Email: "ops@erapp.com", Name: "Ops", Role: sec.RoleAdmin, CreatedAt: base.Add(time.Hour)},
		&auth.User{ID: ashaID, Email: "asha@example.com", Name: "Asha", Role: sec.RoleUser, CreatedAt: base.Add(2 * time.Hour)},
		&auth.User{ID: raviID, Email: "ravi@example.com", Name: "Ravi", Role: sec.RoleUser, CreatedAt: base.Add(3 * time.Hour)},
	)
}

func newService(repo *authtest.MemoryRepository) *admin.Service {
	return admin.NewService(repo, fixedCounter{n: 3}, fixedCounter{n: 10}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestStats aggregates the three counters.
*/
func TestStats(t *testing.T) {
	stats, err := newService(newRepo()).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, admin.Stats{TotalUsers: 4, UnaddedTerms: 3, LegalSections: 10}, *stats)

	failing := admin.NewService(newRepo(), fixedCounter{err: errors.New("down")}, fixedCounter{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err = failing.Stats(context.Background())
	require.Error(t, err)
}

/*
TestListUsers_NewestFirst pages through accounts in creation order, newest first.
*/
func TestListUsers_NewestFirst(t *testing.T) {
	service := newService(newRepo())

	users, total, err := service.ListUsers(context.Background(), pagination.Params{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, users, 3)
	assert.Equal(t, []string{raviID, ashaID, otherAdm}, []string{users[0].ID, users[1].ID, users[2].ID})

	users, _, err = service.ListUsers(context.Background(), pagination.Params{Page: 2, Limit: 3})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, adminID, users[0].ID)

	users, _, err = service.ListUsers(context.Background(), pagination.Params{Page: 5, Limit: 3})
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

/*
TestDeleteUser_Guards covers the self, admin and missing-target rules.
*/
func TestDeleteUser_Guards(t *testing.T) {
	tests := []struct {
		name     string
		targetID string
		wantCode string
	}{
		{"self", adminID, apperr.CodeForbidden},
		{"other_admin", otherAdm, apperr.CodeForbidden},
		{"missing", "0192f0c4-0000-7000-8000-0000000000ff", apperr.CodeNotFound},
		{"malformed_id", "not-a-uuid", apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo()
			err := newService(repo).DeleteUser(context.Background(), adminID, tt.targetID)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, tt.wantCode), "got %v", err)

			count, _ := repo.Count(context.Background())
			assert.Equal(t, 4, count)
		})
	}
}

/*
TestDeleteUser_RemovesRegularAccount deletes a user account exactly once.
*/
func TestDeleteUser_RemovesRegularAccount(t *testing.T) {
	repo := newRepo()
	service := newService(repo)

	require.NoError(t, service.DeleteUser(context.Background(), adminID, ashaID))

	_, err := repo.FindByID(context.Background(), ashaID)
	assert.True(t, apperr.IsNotFound(err))

	err = service.DeleteUser(context.Background(), adminID, ashaID)
	assert.True(t, apperr.IsNotFound(err))
}

// # HTTP

func newServer(repo *authtest.MemoryRepository, role sec.UserRole) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := &sec.AuthClaims{UserID: adminID, Email: "admin@erapp.com", Role: string(role)}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	})
	router.Mount("/api/admin", admin.NewHandler(newService(repo)).Routes())
	return router
}

/*
TestHandler_Endpoints exercises the console routes end to end.
*/
func TestHandler_Endpoints(t *testing.T) {
	repo := newRepo()
	server := newServer(repo, sec.RoleAdmin)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"totalUsers":4,"unaddedTerms":3,"legalSections":10}}`, recorder.Body.String())

	recorder = httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/admin/users?limit=2", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var page struct {
		Data []map[string]any `json:"data"`
		Meta pagination.Meta  `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	require.Len(t, page.Data, 2)
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 2, Total: 4, TotalPages: 2}, page.Meta)
	assert.NotContains(t, page.Data[0], "passwordHash")

	recorder = httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+otherAdm, nil))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+raviID, nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHandler_RequiresAdmin rejects regular users.
*/
func TestHandler_RequiresAdmin(t *testing.T) {
	server := newServer(newRepo(), sec.RoleUser)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
