// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page windows for list endpoints such as the
// admin user listing and describes them back to the client.
//
// # Query
//
//	GET /api/v1/users?page=2&limit=50
//
// Missing or unparsable values fall back to the defaults. A limit above
// [MaxLimit] is capped rather than rejected.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-indexed page window.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before this page.
func (params Params) Offset() int {
	if params.Page <= 1 {
		return 0
	}
	return (params.Page - 1) * params.Limit
}

// Meta describes a served page inside the "data" of a list envelope.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewMeta builds the metadata for params given the total row count.
func NewMeta(params Params, total int) Meta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
	}
}

// FromRequest reads "page" and "limit" from the query string.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page := queryInt(query.Get("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := queryInt(query.Get("limit"), DefaultLimit)
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
