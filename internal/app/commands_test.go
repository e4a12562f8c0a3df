package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wearapp_hotels/internal/app"
	"wearapp_hotels/internal/domain"
)

func input(title string, price float64) app.HotelInput {
	return app.HotelInput{
		Title:       title,
		Description: "desc",
		Latitude:    41.0,
		Longitude:   29.0,
		Price:       price,
	}
}

func upload() *app.Upload {
	return &app.Upload{Filename: "room.jpg", Data: strings.NewReader("jpegbytes")}
}

func TestCreateHotel_WithImage(t *testing.T) {
	repo := newFakeRepo()
	images := &fakeImages{}
	c := app.NewCommandService(repo, images, &fakeCache{})

	h, err := c.CreateHotel(context.Background(), input("Grand", 120), upload())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.ID == 0 || h.Title != "Grand" || deref(h.Image) != "/uploads/img-1" {
		t.Fatalf("unexpected hotel: %+v", h)
	}
	if len(images.removed) != 0 {
		t.Fatalf("nothing should be removed on success: %v", images.removed)
	}
}

func TestCreateHotel_NoImage(t *testing.T) {
	repo := newFakeRepo()
	c := app.NewCommandService(repo, &fakeImages{}, &fakeCache{})

	h, err := c.CreateHotel(context.Background(), input("Plain", 40), nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.Image != nil {
		t.Fatalf("expected nil image, got %s", *h.Image)
	}
}

func TestCreateHotel_InsertFailureCleansUpFile(t *testing.T) {
	repo := newFakeRepo()
	repo.failInsert = true
	images := &fakeImages{}
	c := app.NewCommandService(repo, images, &fakeCache{})

	_, err := c.CreateHotel(context.Background(), input("Doomed", 10), upload())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected insert error, got %v", err)
	}
	if len(images.saved) != 1 || len(images.removed) != 1 || images.removed[0] != images.saved[0] {
		t.Fatalf("orphan not cleaned up: saved=%v removed=%v", images.saved, images.removed)
	}
}

func TestUpdateHotel_ReplaceImageDeletesOld(t *testing.T) {
	repo := newFakeRepo()
	images := &fakeImages{}
	cache := &fakeCache{}
	c := app.NewCommandService(repo, images, cache)

	created, _ := c.CreateHotel(context.Background(), input("Old", 50), upload())

	updated, err := c.UpdateHotel(context.Background(), created.ID, input("New", 60), upload())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if deref(updated.Image) != "/uploads/img-2" {
		t.Fatalf("expected new image, got %s", deref(updated.Image))
	}
	if len(images.removed) != 1 || images.removed[0] != "/uploads/img-1" {
		t.Fatalf("old image not removed: %v", images.removed)
	}
	if len(cache.dels) == 0 || cache.dels[0] != "hotel:1" {
		t.Fatalf("cache not invalidated: %v", cache.dels)
	}
}

func TestUpdateHotel_NoImageKeepsReference(t *testing.T) {
	repo := newFakeRepo()
	images := &fakeImages{}
	c := app.NewCommandService(repo, images, &fakeCache{})

	created, _ := c.CreateHotel(context.Background(), input("Keep", 50), upload())

	updated, err := c.UpdateHotel(context.Background(), created.ID, input("Keep v2", 55), nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if deref(updated.Image) != deref(created.Image) {
		t.Fatalf("image reference changed: %s -> %s", deref(created.Image), deref(updated.Image))
	}
	if len(images.removed) != 0 {
		t.Fatalf("no file should be removed: %v", images.removed)
	}
}

func TestUpdateHotel_NotFound(t *testing.T) {
	c := app.NewCommandService(newFakeRepo(), &fakeImages{}, &fakeCache{})

	_, err := c.UpdateHotel(context.Background(), 99, input("Ghost", 1), nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteHotel_RemovesFileAndRow(t *testing.T) {
	repo := newFakeRepo()
	images := &fakeImages{}
	cache := &fakeCache{}
	c := app.NewCommandService(repo, images, cache)

	created, _ := c.CreateHotel(context.Background(), input("Bye", 30), upload())

	if err := c.DeleteHotel(context.Background(), created.ID); err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(images.removed) != 1 || images.removed[0] != deref(created.Image) {
		t.Fatalf("file not removed: %v", images.removed)
	}
	if _, err := repo.GetHotel(context.Background(), created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("row still present")
	}
	if len(cache.dels) == 0 {
		t.Fatalf("cache not invalidated")
	}
}

func TestDeleteHotel_NotFound(t *testing.T) {
	c := app.NewCommandService(newFakeRepo(), &fakeImages{}, &fakeCache{})
	if err := c.DeleteHotel(context.Background(), 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateHotel_SaveFailureAbortsInsert(t *testing.T) {
	repo := newFakeRepo()
	images := &fakeImages{failSave: true}
	c := app.NewCommandService(repo, images, &fakeCache{})

	_, err := c.CreateHotel(context.Background(), input("NoDisk", 10), upload())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected save error, got %v", err)
	}
	if len(repo.hotels) != 0 {
		t.Fatalf("no row should exist after save failure")
	}
}
