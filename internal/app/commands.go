package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"wearapp_hotels/internal/adapters/observability"
	"wearapp_hotels/internal/domain"
)

// HotelInput carries the validated form fields shared by create and update.
type HotelInput struct {
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Price       float64
}

// Upload is an image file received with a write request.
type Upload struct {
	Filename string
	Data     io.Reader
}

type CommandService struct {
	repo   domain.HotelRepository
	images domain.ImageStore
	cache  domain.Cache
}

func NewCommandService(r domain.HotelRepository, img domain.ImageStore, c domain.Cache) *CommandService {
	return &CommandService{repo: r, images: img, cache: c}
}

// CreateHotel stores the image first (when present) so the insert can
// reference it; if the insert then fails, the just-saved file is removed
// before the error is returned so no orphan is left behind.
func (s *CommandService) CreateHotel(ctx context.Context, in HotelInput, img *Upload) (domain.Hotel, error) {
	h := domain.Hotel{
		Title:       in.Title,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Price:       in.Price,
	}
	if img != nil {
		rel, err := s.images.Save(ctx, img.Filename, img.Data)
		if err != nil {
			return domain.Hotel{}, err
		}
		h.Image = &rel
	}

	created, err := s.repo.Insert(ctx, h)
	if err != nil {
		if h.Image != nil {
			if rerr := s.images.Remove(ctx, *h.Image); rerr != nil {
				log.Error().Err(rerr).Str("path", *h.Image).Msg("orphan image cleanup failed")
			} else {
				observability.ObserveFile("orphan_cleanup")
			}
		}
		return domain.Hotel{}, err
	}
	return created, nil
}

// UpdateHotel replaces the stored image when a new one is uploaded (the old
// file is deleted once the new one is on disk) and keeps the existing
// reference otherwise. A row update failure after the swap is not rolled back.
func (s *CommandService) UpdateHotel(ctx context.Context, id int64, in HotelInput, img *Upload) (domain.Hotel, error) {
	existing, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}

	h := domain.Hotel{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Price:       in.Price,
		Image:       existing.Image,
	}
	if img != nil {
		rel, err := s.images.Save(ctx, img.Filename, img.Data)
		if err != nil {
			return domain.Hotel{}, err
		}
		if existing.Image != nil {
			if rerr := s.images.Remove(ctx, *existing.Image); rerr != nil {
				log.Error().Err(rerr).Str("path", *existing.Image).Msg("replaced image removal failed")
			}
		}
		h.Image = &rel
	}

	updated, err := s.repo.Update(ctx, h)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.invalidateHotel(ctx, id)
	return updated, nil
}

// DeleteHotel removes the image file first, then the row. File removal is
// best-effort; a failure is logged and does not block the row delete.
func (s *CommandService) DeleteHotel(ctx context.Context, id int64) error {
	existing, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return err
	}
	if existing.Image != nil {
		if rerr := s.images.Remove(ctx, *existing.Image); rerr != nil {
			log.Error().Err(rerr).Str("path", *existing.Image).Msg("image removal failed")
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateHotel(ctx, id)
	return nil
}

func (s *CommandService) invalidateHotel(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("hotel:%d", id))
}
