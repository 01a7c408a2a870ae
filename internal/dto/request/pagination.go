package request

import (
	"net/url"

	"travel-booking/pkg/utils"
)

const maxPerPage = 100

// PaginatedRequest is the page/per_page pair of the plain list endpoints
// (activities, reviews, users). Transaction lists page through trxview.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// PageFromQuery reads page and per_page, falling back to page 1 and
// defaultPerPage for missing or malformed values.
func PageFromQuery(query url.Values, defaultPerPage int) PaginatedRequest {
	return PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), defaultPerPage),
	}
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

// Limit clamps PerPage to 1..100, defaulting to 10.
func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return 10
	case p.PerPage > maxPerPage:
		return maxPerPage
	default:
		return p.PerPage
	}
}
