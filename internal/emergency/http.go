// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package emergency

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/erapp/internal/platform/respond"
	"github.com/taibuivan/erapp/internal/platform/validate"
	"github.com/taibuivan/erapp/pkg/convert"
)

// Handler implements the HTTP layer for the emergency directory.
type Handler struct {
	directoryService *Service
}

// NewHandler constructs a new emergency [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{directoryService: service}
}

// Routes returns a [chi.Router] with the public directory endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/numbers", handler.numbers)
	router.Get("/facilities", handler.facilities)

	return router
}

/*
GET /api/emergency/numbers?country=.

Response:
  - 200: CountryNumbers
*/
func (handler *Handler) numbers(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.directoryService.Numbers(request.URL.Query().Get(FieldCountry)))
}

/*
GET /api/emergency/facilities?lat=&lng=&radius=.

Response:
  - 200: []Facility closest first
  - 400: VALIDATION_ERROR
  - 503: SERVICE_UNAVAILABLE
*/
func (handler *Handler) facilities(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	lat, latErr := parseCoordinate(query.Get(FieldLat))
	lng, lngErr := parseCoordinate(query.Get(FieldLng))

	validator := &validate.Validator{}
	validator.
		Custom(FieldLat, latErr != nil, "Latitude is required and must be a number").
		Custom(FieldLng, lngErr != nil, "Longitude is required and must be a number")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	facilities, err := handler.directoryService.Facilities(request.Context(),
		Point{Lat: lat, Lng: lng},
		convert.ToFloat64(query.Get(FieldRadius)),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, facilities)
}

func parseCoordinate(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
