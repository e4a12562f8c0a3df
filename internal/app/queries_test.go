package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"wearapp_hotels/internal/app"
	"wearapp_hotels/internal/domain"
)

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	repo := newFakeRepo()
	repo.hotels[42] = domain.Hotel{ID: 42, Title: "Grand Cache", Price: 99}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	h, err := q.GetHotel(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.ID != 42 || h.Title != "Grand Cache" {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// Mutate repo to ensure second read indeed comes from cache
	repo.hotels[42] = domain.Hotel{ID: 42, Title: "SHOULD NOT SEE THIS"}

	h2, err := q.GetHotel(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h2.Title != "Grand Cache" {
		t.Fatalf("expected cached title, got %s", h2.Title)
	}
}

func TestGetHotel_NotFound(t *testing.T) {
	q := app.NewQueryService(newFakeRepo(), &fakeCache{}, time.Minute)
	if _, err := q.GetHotel(context.Background(), 7); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListHotels_PageMath(t *testing.T) {
	repo := newFakeRepo()
	repo.listItems = []domain.Hotel{{ID: 3}, {ID: 4}}
	repo.listTotal = 5
	q := app.NewQueryService(repo, &fakeCache{}, time.Minute)

	page, err := q.ListHotels(context.Background(), domain.ListQuery{Limit: 2, Page: 2})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(page.Items) != 2 || page.TotalItems != 5 || page.Page != 2 || page.PerPage != 2 || page.TotalPages != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if repo.lastQuery.Offset() != 2 {
		t.Fatalf("unexpected offset: %d", repo.lastQuery.Offset())
	}
}

func TestListHotels_EmptyResult(t *testing.T) {
	repo := newFakeRepo()
	q := app.NewQueryService(repo, &fakeCache{}, time.Minute)

	page, err := q.ListHotels(context.Background(), domain.ListQuery{
		Title: ptr("nowhere"),
		Limit: 10,
		Page:  1,
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(page.Items) != 0 || page.TotalItems != 0 || page.TotalPages != 0 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if repo.lastQuery.Title == nil || *repo.lastQuery.Title != "nowhere" {
		t.Fatalf("filter not forwarded: %+v", repo.lastQuery)
	}
}
