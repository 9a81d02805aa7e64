package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// Params holds validated pagination parameters
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse extracts page/limit from query parameters. Out-of-range values are
// clamped rather than rejected: page < 1 becomes 1, limit is forced into
// [MinLimit, MaxLimit].
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Meta is the pagination block attached to every listing response
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Pages   int   `json:"pages"`
	HasMore bool  `json:"hasMore"`
}

// NewMeta computes the pagination block for a filtered total.
// Pages is ceil(total/limit); HasMore holds exactly when page < pages,
// so a page past the end reports HasMore = false with an empty result.
func NewMeta(total int64, p Params) Meta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		Total:   total,
		Page:    p.Page,
		Limit:   p.Limit,
		Pages:   pages,
		HasMore: p.Page < pages,
	}
}
