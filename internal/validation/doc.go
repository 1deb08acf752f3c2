// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation validates API request structs with go-playground/validator v10.
//
// A single validator is created on first use and caches struct metadata.
// Field names in messages come from the `query` tag, so a failure reads
// "title is required" rather than "Title is required".
//
//	type RecommendationsRequest struct {
//	    Title string `query:"title" validate:"required,notblank,max=500"`
//	    K     int    `query:"k" validate:"min=1,max=50"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Custom validators:
//   - notblank: string is not empty after trimming whitespace
package validation
