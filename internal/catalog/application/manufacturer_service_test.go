package application

import (
	"context"
	"errors"
	"testing"

	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
)

func TestManufacturerCreate(t *testing.T) {
	svc := NewManufacturerService(newFakeManufacturerRepo(), nil)

	view, err := svc.Create(context.Background(), "amd")
	if err != nil {
		t.Fatalf("Create(amd) unexpected error: %v", err)
	}
	if view.ID == 0 {
		t.Error("view.ID = 0, want assigned id")
	}
	if view.Name != "AMD" {
		t.Errorf("view.Name = %q, want AMD", view.Name)
	}

	if _, err := svc.Create(context.Background(), "  "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("Create(blank) error = %v, want ErrInvalidArgument", err)
	}
}

func TestManufacturerGetByID(t *testing.T) {
	repo := newFakeManufacturerRepo()
	seeded := repo.seed("AMD")
	svc := NewManufacturerService(repo, nil)

	view, err := svc.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if view.Name != "AMD" {
		t.Errorf("view.Name = %q, want AMD", view.Name)
	}

	if _, err := svc.GetByID(context.Background(), 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID(9999) error = %v, want ErrNotFound", err)
	}
}

func TestManufacturerList(t *testing.T) {
	repo := newFakeManufacturerRepo()
	repo.seed("AMD")
	repo.seed("Intel")
	repo.seed("Nvidia")
	svc := NewManufacturerService(repo, nil)

	views, total, err := svc.List(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(views) != 2 {
		t.Errorf("len(views) = %d, want 2 (page size)", len(views))
	}

	views, _, err = svc.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("List(page 2) unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Errorf("len(views) = %d on page 2, want 1", len(views))
	}
}

func TestManufacturerRenameService(t *testing.T) {
	repo := newFakeManufacturerRepo()
	seeded := repo.seed("AMD")
	svc := NewManufacturerService(repo, nil)

	view, err := svc.Rename(context.Background(), seeded.ID, "advanced micro devices")
	if err != nil {
		t.Fatalf("Rename() unexpected error: %v", err)
	}
	if view.Name != "ADVANCED MICRO DEVICES" {
		t.Errorf("view.Name = %q, want ADVANCED MICRO DEVICES", view.Name)
	}

	if _, err := svc.Rename(context.Background(), 9999, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Rename(9999) error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Rename(context.Background(), seeded.ID, " "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("Rename(blank) error = %v, want ErrInvalidArgument", err)
	}
}
