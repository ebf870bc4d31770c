// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strconv"

// ListParams represents paging and search criteria for collection endpoints.
type ListParams struct {
	// Page is the 1-based page number. Zero means "backend default".
	Page int

	// Limit is the page size. Zero means "backend default".
	Limit int

	// Search is a free-text filter.
	Search string

	// Sort is a backend sort expression, e.g. "-updatedAt".
	Sort string
}

// Query renders the non-zero params as query-string values.
func (p ListParams) Query() map[string]string {
	q := make(map[string]string, 4)
	if p.Page > 0 {
		q["page"] = strconv.Itoa(p.Page)
	}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	if p.Search != "" {
		q["search"] = p.Search
	}
	if p.Sort != "" {
		q["sort"] = p.Sort
	}
	return q
}

// Page is one page of a collection endpoint.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
