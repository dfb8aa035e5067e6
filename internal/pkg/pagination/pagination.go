package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params are the normalized list parameters shared by every list endpoint.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// FromQuery reads page, limit, sort_by and sort_order, clamping page to >= 1
// and limit to 1..100. Unparsable numbers fall back to the defaults.
func FromQuery(get func(string) string) Params {
	p := Params{
		Page:      atoiOr(get("page"), DefaultPage),
		Limit:     atoiOr(get("limit"), DefaultLimit),
		SortBy:    get("sort_by"),
		SortOrder: get("sort_order"),
	}
	// an explicit limit=0 means the smallest page, not the default
	if p.Limit == 0 {
		p.Limit = 1
	}
	p.Normalize()
	return p
}

// Normalize applies defaults to zero values and clamps out-of-range values.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if strings.ToLower(p.SortOrder) == "asc" {
		p.SortOrder = "ASC"
	} else {
		p.SortOrder = "DESC"
	}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// SortColumn resolves SortBy against a whitelist, falling back to fallback.
func (p Params) SortColumn(allowed map[string]string, fallback string) string {
	if col, ok := allowed[p.SortBy]; ok {
		return col
	}
	return fallback
}

// TotalPages is ceil(total/limit), never less than 1.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
