package app_test

import (
	"context"
	"errors"
	"fmt"
	"io"

	"wearapp_hotels/internal/domain"
)

// ---- fakes ----

var errBoom = errors.New("boom")

type fakeRepo struct {
	hotels     map[int64]domain.Hotel
	nextID     int64
	failInsert bool
	failUpdate bool

	listItems []domain.Hotel
	listTotal int64
	lastQuery domain.ListQuery
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{hotels: map[int64]domain.Hotel{}, nextID: 1}
}

func (f *fakeRepo) Insert(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	if f.failInsert {
		return domain.Hotel{}, errBoom
	}
	h.ID = f.nextID
	f.nextID++
	f.hotels[h.ID] = h
	return h, nil
}

func (f *fakeRepo) Update(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	if f.failUpdate {
		return domain.Hotel{}, errBoom
	}
	if _, ok := f.hotels[h.ID]; !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	f.hotels[h.ID] = h
	return h, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.hotels, id)
	return nil
}

func (f *fakeRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeRepo) ListHotels(ctx context.Context, q domain.ListQuery) ([]domain.Hotel, int64, error) {
	f.lastQuery = q
	return f.listItems, f.listTotal, nil
}

type fakeImages struct {
	n        int
	saved    []string
	removed  []string
	failSave bool
}

func (f *fakeImages) Save(ctx context.Context, name string, data io.Reader) (string, error) {
	if f.failSave {
		return "", errBoom
	}
	f.n++
	rel := fmt.Sprintf("/uploads/img-%d", f.n)
	f.saved = append(f.saved, rel)
	return rel, nil
}

func (f *fakeImages) Remove(ctx context.Context, rel string) error {
	f.removed = append(f.removed, rel)
	return nil
}

type fakeCache struct {
	store map[string]domain.Hotel
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*domain.Hotel); ok {
		*d = v
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]domain.Hotel{}
	}
	if h, ok := v.(domain.Hotel); ok {
		c.store[key] = h
	}
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

// ---- helpers ----

func ptr[T any](v T) *T { return &v }

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
