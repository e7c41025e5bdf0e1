package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps the skip offset far from integer overflow
	MaxPage = 100000
)

// Pagination describes one page of a listing
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// Request represents a pagination request from client. A zero Page means
// the client asked for the whole collection.
type Request struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// New computes the page metadata for total matching documents
func New(page, limit int, total int64) *Pagination {
	page, limit = clamp(page, limit)

	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 1 {
		pages = 1
	}

	return &Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// FromRequest parses page/limit query values. A missing page yields a zero
// Request, meaning "unpaginated".
func FromRequest(pageStr, limitStr string) Request {
	if pageStr == "" && limitStr == "" {
		return Request{}
	}

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)
	page, limit = clamp(page, limit)

	return Request{Page: page, Limit: limit}
}

// Enabled reports whether the client asked for a page
func (r Request) Enabled() bool {
	return r.Page > 0
}

// Skip returns the number of documents to skip
func (r Request) Skip() int64 {
	if !r.Enabled() {
		return 0
	}
	return int64(r.Page-1) * int64(r.Limit)
}

func clamp(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
