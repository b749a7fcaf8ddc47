// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/erapp/internal/platform/middleware"
	requestutil "github.com/taibuivan/erapp/internal/platform/request"
	"github.com/taibuivan/erapp/internal/platform/respond"
	"github.com/taibuivan/erapp/internal/platform/sec"
	"github.com/taibuivan/erapp/pkg/pagination"
)

// Handler implements the HTTP layer for the admin console.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new admin [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] with the console endpoints. Every route
// requires the admin role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/stats", handler.stats)
	router.Get("/users", handler.listUsers)
	router.Delete("/users/{id}", handler.deleteUser)

	return router
}

/*
GET /api/admin/stats.

Response:
  - 200: Stats
  - 403: FORBIDDEN
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.adminService.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

/*
GET /api/admin/users?page=&limit=.

Response:
  - 200: []User with pagination meta
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.adminService.ListUsers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
DELETE /api/admin/users/{id}.

Response:
  - 200: {"message": "User deleted successfully"}
  - 403: FORBIDDEN (self or admin target)
  - 404: NOT_FOUND
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.DeleteUser(request.Context(), claims.UserID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "User deleted successfully"})
}
