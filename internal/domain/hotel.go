package domain

import "errors"

var ErrNotFound = errors.New("hotel not found")

type Hotel struct {
	ID          int64
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Price       float64
	Image       *string // relative path under the upload prefix, e.g. /uploads/<name>
}

// ListQuery holds the optional filters and pagination for the hotels list.
// Nil filter fields mean "not constrained".
type ListQuery struct {
	Title    *string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Page     int
}

func (q ListQuery) Offset() int { return (q.Page - 1) * q.Limit }

type HotelsPage struct {
	Items      []Hotel
	TotalItems int64
	Page       int
	PerPage    int
	TotalPages int
}
