// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (MaxPage-1)*MaxLimit within int.
	MaxPage = math.MaxInt / MaxLimit
)

// SortOrder is the direction of an ORDER BY clause.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// PageRequest holds pagination and sorting parameters extracted from query
// strings. SortBy is the raw value supplied by the caller; repositories map it
// through their own whitelist.
type PageRequest struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
}

// Offset returns the number of rows to skip for the requested page.
// Page and limit are clamped to [1, MaxPage] and [1, MaxLimit] so the
// result is never negative.
func (p PageRequest) Offset() int {
	page := min(max(p.Page, 1), MaxPage)
	limit := min(max(p.Limit, 1), MaxLimit)
	return (page - 1) * limit
}

// Pagination is the pagination block of a listing response.
// TotalItems and TotalPages are omitted by endpoints that do not count.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items,omitempty"`
	TotalPages int64 `json:"total_pages,omitempty"`
}

// NewPagination builds the pagination block for a counted result.
func NewPagination(req PageRequest, totalItems int64) Pagination {
	totalPages := totalItems / int64(req.Limit)
	if totalItems%int64(req.Limit) > 0 {
		totalPages++
	}

	return Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// ChapterPage is the paged chapter listing.
type ChapterPage struct {
	Chapters   []ChapterOverview `json:"chapters"`
	Pagination Pagination        `json:"pagination"`
}

// TopicPage is the paged topic statistics listing.
type TopicPage struct {
	Topics     []TopicSummary `json:"topics"`
	Pagination Pagination     `json:"pagination"`
}

// SearchPage is the result of a title search.
type SearchPage struct {
	Pagination Pagination   `json:"pagination"`
	Data       []SearchItem `json:"data"`
}
