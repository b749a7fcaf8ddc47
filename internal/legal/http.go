// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/erapp/internal/platform/constants"
	"github.com/taibuivan/erapp/internal/platform/middleware"
	requestutil "github.com/taibuivan/erapp/internal/platform/request"
	"github.com/taibuivan/erapp/internal/platform/respond"
	"github.com/taibuivan/erapp/internal/platform/sec"
	"github.com/taibuivan/erapp/internal/platform/validate"
	"github.com/taibuivan/erapp/pkg/convert"
)

// # Handler Implementation

// Handler implements the HTTP layer for legal search and curation.
type Handler struct {
	corpus   *Corpus
	ledger   *Ledger
	search   *SearchEngine
	curation *Curation
}

// NewHandler constructs a legal [Handler].
func NewHandler(corpus *Corpus, ledger *Ledger, search *SearchEngine, curation *Curation) *Handler {
	return &Handler{corpus: corpus, ledger: ledger, search: search, curation: curation}
}

// Routes returns a [chi.Router] with the legal endpoints.
//
// # Routing Strategy
//
//   - Public: section listing, search and term tracking.
//   - Curation: ledger listing and resolution require [sec.RoleAdmin].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Endpoints
	router.Get("/sections", handler.listSections)
	router.Get("/search", handler.searchSections)
	router.Post("/unadded-terms", handler.trackTerm)

	// ## Curation (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/unadded-terms", handler.listTerms)
		admin.Post("/unadded-terms/{id}/ignore", handler.ignoreTerm)
		admin.Post("/unadded-terms/{id}/link", handler.linkTerm)
	})

	return router
}

// # Corpus Endpoints

/*
GET /api/legal/sections.

Description: Lists every section ordered by title. When the store is
unreachable the built-in dataset is returned and the X-Corpus-Source
header reads "fallback".

Response:
  - 200: []Section
*/
func (handler *Handler) listSections(writer http.ResponseWriter, request *http.Request) {
	sections, source, err := handler.corpus.Browse(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set(constants.HeaderCorpusSource, string(source))
	respond.OK(writer, sections)
}

/*
GET /api/legal/search.

Request:
  - q: string (Free text)
  - track: bool (Record the query in the unadded-term ledger)

Response:
  - 200: SearchResult
  - 404: NO_MATCH
*/
func (handler *Handler) searchSections(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	result, err := handler.search.Search(request.Context(), query.Get(FieldQuery), convert.ToBool(query.Get("track")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set(constants.HeaderCorpusSource, string(result.Source))
	respond.OK(writer, result)
}

// # Ledger Endpoints

type trackTermRequest struct {
	Term string `json:"term"`
}

/*
POST /api/legal/unadded-terms.

Request:
  - Body: { term }

Response:
  - 200: UnaddedTerm (after increment)
  - 400: VALIDATION_ERROR for a blank term
*/
func (handler *Handler) trackTerm(writer http.ResponseWriter, request *http.Request) {
	var input trackTermRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entry, err := handler.ledger.Track(request.Context(), input.Term)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// GET /api/legal/unadded-terms (admin). Most searched first.
func (handler *Handler) listTerms(writer http.ResponseWriter, request *http.Request) {
	terms, err := handler.ledger.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, terms)
}

// POST /api/legal/unadded-terms/{id}/ignore (admin).
func (handler *Handler) ignoreTerm(writer http.ResponseWriter, request *http.Request) {
	if err := handler.curation.Ignore(request.Context(), requestutil.ID(request, FieldID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Term ignored successfully"})
}

type linkTermRequest struct {
	ExistingCaseID string `json:"existingCaseId"`
	CaseTitle      string `json:"caseTitle"`
}

/*
POST /api/legal/unadded-terms/{id}/link (admin).

Request:
  - Body: { existingCaseId, caseTitle }

Response:
  - 200: LinkResult
  - 404: Term or existing case not found
  - 500: PARTIAL_COMPLETION when the keyword was added but the term remains listed
*/
func (handler *Handler) linkTerm(writer http.ResponseWriter, request *http.Request) {
	var input linkTermRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.curation.Link(request.Context(), LinkInput{
		TermID:        requestutil.ID(request, FieldID),
		TargetRef:     input.ExistingCaseID,
		FallbackTitle: input.CaseTitle,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
