// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// DefaultMoviesLimit is the page size of /api/v1/movies when no limit is given.
const DefaultMoviesLimit = 20

// RecommendationsRequest is the query of GET /api/v1/recommendations.
type RecommendationsRequest struct {
	Title string `query:"title" validate:"required,notblank,max=500"`
	K     int    `query:"k" validate:"min=1,max=50"`
}

// MoviesRequest is the query of GET /api/v1/movies.
type MoviesRequest struct {
	Q      string `query:"q" validate:"max=200"`
	Limit  int    `query:"limit" validate:"min=1,max=100"`
	Offset int    `query:"offset" validate:"gte=0"`
}

// GenreMoviesRequest is the query of GET /api/v1/genres/{genre}/movies.
type GenreMoviesRequest struct {
	K int `query:"k" validate:"min=1,max=50"`
}

// paramError is a query parameter that could not be parsed.
type paramError struct {
	field string
	value string
}

func (e *paramError) write(rw *ResponseWriter) {
	rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidationFailed, e.field+" must be a number",
		map[string]any{"field": e.field, "tag": "numeric", "value": e.value})
}

// intParam reads an integer parameter, returning def when it is absent.
func intParam(q url.Values, key string, def int) (int, *paramError) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{field: key, value: raw}
	}
	return v, nil
}

// bindRecommendations parses and validates the recommendation query.
// It writes the error response itself and reports false on failure.
func bindRecommendations(rw *ResponseWriter, r *http.Request, defaultK int) (RecommendationsRequest, bool) {
	q := r.URL.Query()
	req := RecommendationsRequest{Title: q.Get("title")}

	k, perr := intParam(q, "k", defaultK)
	if perr != nil {
		perr.write(rw)
		return req, false
	}
	req.K = k

	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return req, false
	}
	return req, true
}

func bindMovies(rw *ResponseWriter, r *http.Request) (MoviesRequest, bool) {
	q := r.URL.Query()
	req := MoviesRequest{Q: strings.TrimSpace(q.Get("q"))}

	var perr *paramError
	if req.Limit, perr = intParam(q, "limit", DefaultMoviesLimit); perr != nil {
		perr.write(rw)
		return req, false
	}
	if req.Offset, perr = intParam(q, "offset", 0); perr != nil {
		perr.write(rw)
		return req, false
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return req, false
	}
	return req, true
}

func bindGenreMovies(rw *ResponseWriter, r *http.Request, defaultK int) (GenreMoviesRequest, bool) {
	var req GenreMoviesRequest

	k, perr := intParam(r.URL.Query(), "k", defaultK)
	if perr != nil {
		perr.write(rw)
		return req, false
	}
	req.K = k

	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return req, false
	}
	return req, true
}
