package domain

import (
	"context"
	"io"
)

type HotelRepository interface {
	// Write paths
	Insert(ctx context.Context, h Hotel) (Hotel, error)
	Update(ctx context.Context, h Hotel) (Hotel, error)
	Delete(ctx context.Context, id int64) error

	// Read paths
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListHotels(ctx context.Context, q ListQuery) ([]Hotel, int64, error)
}

// ImageStore owns uploaded image files. Save returns the relative path that
// gets persisted on the hotel row; Remove accepts the same relative path and
// treats an already-missing file as success.
type ImageStore interface {
	Save(ctx context.Context, originalName string, data io.Reader) (string, error)
	Remove(ctx context.Context, relPath string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
