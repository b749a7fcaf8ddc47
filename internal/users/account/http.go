// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/erapp/internal/platform/middleware"
	requestutil "github.com/taibuivan/erapp/internal/platform/request"
	"github.com/taibuivan/erapp/internal/platform/respond"
	"github.com/taibuivan/erapp/internal/platform/validate"
	"github.com/taibuivan/erapp/internal/users/auth"
)

// Handler implements the HTTP layer for the user profile.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] with the profile endpoints. Every route
// requires an authenticated session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/profile", handler.getProfile)
	router.Put("/profile", handler.updateProfile)

	return router
}

/*
GET /api/users/profile.

Response:
  - 200: User: Fully hydrated profile
  - 401: UNAUTHORIZED
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateProfileRequest is the JSON payload for profile updates. Omitted
// fields are left unchanged.
type updateProfileRequest struct {
	Name             *string                `json:"name"`
	BloodGroup       *string                `json:"bloodGroup"`
	Address          *string                `json:"address"`
	Allergies        *string                `json:"allergies"`
	EmergencyContact *auth.EmergencyContact `json:"emergencyContact"`
}

/*
PUT /api/users/profile.

Response:
  - 200: User: The updated profile
  - 400: VALIDATION_ERROR
  - 401: UNAUTHORIZED
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Name:             input.Name,
		BloodGroup:       input.BloodGroup,
		Address:          input.Address,
		Allergies:        input.Allergies,
		EmergencyContact: input.EmergencyContact,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
