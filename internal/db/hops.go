package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"brewkit/internal/hop"
	applog "brewkit/internal/log"
	"brewkit/models"
)

// ErrNotFound is returned when no hop row matches.
var ErrNotFound = errors.New("hop not found")

// Record is a stored hop with its row metadata.
type Record struct {
	ID        uint
	CreatedAt time.Time
	UpdatedAt time.Time
	Hop       *hop.Hop
}

// HopStore persists hops through gorm. Rows are converted through the hop
// setters on the way out, so a row edited outside the application that breaks
// a field rule surfaces as a validation error.
type HopStore struct {
	db *gorm.DB
}

// NewHopStore wraps db.
func NewHopStore(db *gorm.DB) *HopStore {
	return &HopStore{db: db}
}

// List returns every hop ordered by name.
func (s *HopStore) List(ctx context.Context) ([]Record, error) {
	var rows []models.Hop
	if err := s.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list hops: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record, err := recordFromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Get loads the hop with the given id.
func (s *HopStore) Get(ctx context.Context, id uint) (Record, error) {
	var row models.Hop
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return Record{}, translate(err, "get hop %d", id)
	}
	return recordFromRow(row)
}

// FindByName loads the hop with the given name.
func (s *HopStore) FindByName(ctx context.Context, name string) (Record, error) {
	var row models.Hop
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		return Record{}, translate(err, "find hop %q", name)
	}
	return recordFromRow(row)
}

// Create inserts h as a new row.
func (s *HopStore) Create(ctx context.Context, h *hop.Hop) (Record, error) {
	row := rowFromHop(h)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Record{}, fmt.Errorf("create hop %q: %w", h.Name(), err)
	}
	applog.Debug(ctx, "hop created", "id", row.ID, "name", row.Name)
	return recordFromRow(row)
}

// Update replaces every field of the row with the given id.
func (s *HopStore) Update(ctx context.Context, id uint, h *hop.Hop) (Record, error) {
	var existing models.Hop
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return Record{}, translate(err, "load hop %d for update", id)
	}

	row := rowFromHop(h)
	row.Model = existing.Model
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return Record{}, fmt.Errorf("update hop %d: %w", id, err)
	}
	applog.Debug(ctx, "hop updated", "id", row.ID, "name", row.Name)
	return recordFromRow(row)
}

// Upsert creates h or, when a hop with the same name exists, overwrites it.
// created reports which happened.
func (s *HopStore) Upsert(ctx context.Context, h *hop.Hop) (Record, bool, error) {
	var (
		record  Record
		created bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := &HopStore{db: tx}

		var row models.Hop
		findErr := tx.Where("name = ?", h.Name()).First(&row).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			saved, err := store.Create(ctx, h)
			if err != nil {
				return err
			}
			record, created = saved, true
			return nil
		}
		if findErr != nil {
			return fmt.Errorf("find hop %q: %w", h.Name(), findErr)
		}

		saved, err := store.Update(ctx, row.ID, h)
		if err != nil {
			return err
		}
		record = saved
		return nil
	})
	return record, created, err
}

// UpsertAll upserts every hop in one transaction, so a failure leaves the
// table unchanged.
func (s *HopStore) UpsertAll(ctx context.Context, hops []*hop.Hop) (created, updated int, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := &HopStore{db: tx}
		for _, h := range hops {
			_, isNew, err := store.Upsert(ctx, h)
			if err != nil {
				return err
			}
			if isNew {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, updated, nil
}

// Delete permanently removes the row with the given id.
func (s *HopStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Unscoped().Delete(&models.Hop{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete hop %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete hop %d: %w", id, ErrNotFound)
	}
	return nil
}

func translate(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

func rowFromHop(h *hop.Hop) models.Hop {
	v := h.Values()
	return models.Hop{
		Name:             v.Name,
		Version:          v.Version,
		AlphaPct:         v.AlphaPct,
		AmountKg:         v.AmountKg,
		Use:              v.Use,
		TimeMin:          v.TimeMin,
		Notes:            v.Notes,
		Type:             v.Type,
		Form:             v.Form,
		BetaPct:          v.BetaPct,
		HSIPct:           v.HSIPct,
		Origin:           v.Origin,
		Substitutes:      v.Substitutes,
		HumulenePct:      v.HumulenePct,
		CaryophyllenePct: v.CaryophyllenePct,
		CohumulonePct:    v.CohumulonePct,
		MyrcenePct:       v.MyrcenePct,
	}
}

func recordFromRow(row models.Hop) (Record, error) {
	h, err := hop.FromValues(hop.Values{
		Name:             row.Name,
		Version:          row.Version,
		AlphaPct:         row.AlphaPct,
		AmountKg:         row.AmountKg,
		Use:              row.Use,
		TimeMin:          row.TimeMin,
		Notes:            row.Notes,
		Type:             row.Type,
		Form:             row.Form,
		BetaPct:          row.BetaPct,
		HSIPct:           row.HSIPct,
		Origin:           row.Origin,
		Substitutes:      row.Substitutes,
		HumulenePct:      row.HumulenePct,
		CaryophyllenePct: row.CaryophyllenePct,
		CohumulonePct:    row.CohumulonePct,
		MyrcenePct:       row.MyrcenePct,
	})
	if err != nil {
		return Record{}, fmt.Errorf("hop row %d (%s): %w", row.ID, row.Name, err)
	}
	return Record{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Hop:       h,
	}, nil
}

// Ping checks that the underlying database answers.
func (s *HopStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
