package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGameCreate_SlugAndYearSanity(t *testing.T) {
	db := newServiceDB(t, "game_create")
	ctx := context.Background()
	svc := NewGameService(db)

	g, err := svc.Create(ctx, "The Witcher 3: Wild Hunt", "open world RPG", 2015)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Slug != "the-witcher-3-wild-hunt" {
		t.Fatalf("slug = %q", g.Slug)
	}

	// A duplicate title gets a release-year suffix instead of a unique
	// index violation.
	g2, err := svc.Create(ctx, "The Witcher 3: Wild Hunt", "remaster", 2022)
	if err != nil {
		t.Fatalf("duplicate title Create: %v", err)
	}
	if g2.Slug != "the-witcher-3-wild-hunt-2022" {
		t.Fatalf("disambiguated slug = %q", g2.Slug)
	}

	// Implausible years are zeroed rather than stored.
	g3, err := svc.Create(ctx, "Future Game", "", time.Now().Year()+10)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g3.ReleaseYear != 0 {
		t.Fatalf("release year = %d, want 0", g3.ReleaseYear)
	}

	if _, err := svc.Create(ctx, "   ", "", 0); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("blank title err = %v, want ErrEmptyContent", err)
	}
}

func TestGameLookup_ByIDAndSlug(t *testing.T) {
	db := newServiceDB(t, "game_lookup")
	ctx := context.Background()
	svc := NewGameService(db)

	g, err := svc.Create(ctx, "Hades", "roguelike", 2020)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got, err := svc.Get(ctx, g.ID); err != nil || got.Title != "Hades" {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got, err := svc.GetBySlug(ctx, "hades"); err != nil || got.ID != g.ID {
		t.Fatalf("GetBySlug = %v, %v", got, err)
	}
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("missing ID err = %v, want ErrGameNotFound", err)
	}
	if _, err := svc.GetBySlug(ctx, "missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("missing slug err = %v, want ErrGameNotFound", err)
	}
}

func TestGameUpdateDelete(t *testing.T) {
	db := newServiceDB(t, "game_update")
	ctx := context.Background()
	svc := NewGameService(db)

	g, err := svc.Create(ctx, "Celeste", "platformer", 2018)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Update(ctx, g.ID, "Celeste", "precision platformer", 2018); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := svc.Get(ctx, g.ID)
	if err != nil || got.Summary != "precision platformer" {
		t.Fatalf("updated game = %v, %v", got, err)
	}

	if err := svc.Update(ctx, "missing", "Title", "", 0); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("missing update err = %v, want ErrGameNotFound", err)
	}
	if err := svc.Update(ctx, g.ID, "   ", "", 0); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("blank title err = %v, want ErrEmptyContent", err)
	}

	if err := svc.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, g.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("double delete err = %v, want ErrGameNotFound", err)
	}
}
