package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brewkit/internal/hop"
	"brewkit/models"
)

func newTestStore(t *testing.T) (*HopStore, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := AutoMigrate(database); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return NewHopStore(database), database
}

func testHop(t *testing.T, name string, alpha float64) *hop.Hop {
	t.Helper()

	h := hop.New()
	h.SetName(name)
	h.SetOrigin("US")
	if err := h.SetAlphaPct(alpha); err != nil {
		t.Fatalf("SetAlphaPct: %v", err)
	}
	if err := h.SetUse(hop.UseAroma); err != nil {
		t.Fatalf("SetUse: %v", err)
	}
	if err := h.SetForm(hop.FormNone); err != nil {
		t.Fatalf("SetForm: %v", err)
	}
	return h
}

func TestHopStoreCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	want := testHop(t, "Mosaic", 12.25)
	created, err := store.Create(ctx, want)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected primary key to be assigned")
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Hop.Values() != want.Values() {
		t.Fatalf("stored hop = %+v, want %+v", got.Hop.Values(), want.Values())
	}
	if got.Hop.Form() != hop.FormNone {
		t.Fatalf("empty form should survive storage, got %q", got.Hop.Form())
	}
}

func TestHopStoreListOrdersByName(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Simcoe", "Amarillo", "Hallertau"} {
		if _, err := store.Create(ctx, testHop(t, name, 7)); err != nil {
			t.Fatalf("Create(%s) returned error: %v", name, err)
		}
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Hop.Name() != "Amarillo" || records[2].Hop.Name() != "Simcoe" {
		t.Fatalf("unexpected order: %s, %s, %s", records[0].Hop.Name(), records[1].Hop.Name(), records[2].Hop.Name())
	}
}

func TestHopStoreUpdate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, testHop(t, "Fuggle", 4.5))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	changed := created.Hop.Clone()
	if err := changed.SetAlphaPct(0); err != nil {
		t.Fatalf("SetAlphaPct: %v", err)
	}
	changed.SetNotes("earthy")

	updated, err := store.Update(ctx, created.ID, changed)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("Update changed id from %d to %d", created.ID, updated.ID)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Hop.AlphaPct() != 0 {
		t.Fatalf("zero alpha should be persisted, got %v", got.Hop.AlphaPct())
	}
	if got.Hop.Notes() != "earthy" {
		t.Fatalf("notes = %q", got.Hop.Notes())
	}

	if _, err := store.Update(ctx, 9999, changed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestHopStoreUpsert(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, created, err := store.Upsert(ctx, testHop(t, "Galaxy", 14))
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if !created {
		t.Fatal("expected first upsert to create")
	}

	second, created, err := store.Upsert(ctx, testHop(t, "Galaxy", 15.5))
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if created {
		t.Fatal("expected second upsert to update")
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a new row: %d != %d", second.ID, first.ID)
	}
	if second.Hop.AlphaPct() != 15.5 {
		t.Fatalf("alpha = %v, want 15.5", second.Hop.AlphaPct())
	}
}

func TestHopStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, testHop(t, "Northern Brewer", 9))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	// a deleted name can be reused
	if _, err := store.Create(ctx, testHop(t, "Northern Brewer", 8)); err != nil {
		t.Fatalf("recreate after delete: %v", err)
	}
}

func TestHopStoreRejectsInvalidRow(t *testing.T) {
	store, database := newTestStore(t)
	ctx := context.Background()

	row := models.Hop{Name: "Corrupt", Use: "Boil", Type: "Both", AlphaPct: 140}
	if err := database.Create(&row).Error; err != nil {
		t.Fatalf("insert raw row: %v", err)
	}

	if _, err := store.Get(ctx, row.ID); !errors.Is(err, hop.ErrValidation) {
		t.Fatalf("expected validation error for out of range row, got %v", err)
	}
}
