package app

import (
	"context"
	"fmt"
	"time"

	"wearapp_hotels/internal/domain"
)

type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := fmt.Sprintf("hotel:%d", id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

// ListHotels is uncached: the result varies by every filter and pagination
// knob, and any write would have to invalidate all variants.
func (s *QueryService) ListHotels(ctx context.Context, q domain.ListQuery) (domain.HotelsPage, error) {
	items, total, err := s.repo.ListHotels(ctx, q)
	if err != nil {
		return domain.HotelsPage{}, err
	}
	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return domain.HotelsPage{
		Items:      items,
		TotalItems: total,
		Page:       q.Page,
		PerPage:    q.Limit,
		TotalPages: pages,
	}, nil
}
