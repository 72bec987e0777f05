package mock

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brewkit/internal/db"
	"brewkit/internal/hop"
	applog "brewkit/internal/log"
)

// New returns an in-memory sqlite database seeded with a small hop library.
// Seeding upserts by name, so calling New twice in one process is safe.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:brewkit-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

// Library returns the seeded hops.
func Library() ([]*hop.Hop, error) {
	library := []hop.Values{
		{
			Name:        "Cascade",
			AlphaPct:    5.5,
			BetaPct:     6,
			Use:         hop.UseBoil,
			Type:        hop.TypeAroma,
			Form:        hop.FormPellet,
			HSIPct:      50,
			Origin:      "US",
			Substitutes: "Centennial, Amarillo",
			Notes:       "Floral and citrus with a grapefruit edge.",
			MyrcenePct:  50,
			HumulenePct: 12,
		},
		{
			Name:          "Saaz",
			AlphaPct:      3.5,
			BetaPct:       4,
			Use:           hop.UseAroma,
			Type:          hop.TypeAroma,
			Form:          hop.FormLeaf,
			HSIPct:        45,
			Origin:        "Czech Republic",
			Substitutes:   "Tettnang, Lublin",
			Notes:         "Classic noble spice for pilsners.",
			CohumulonePct: 24,
		},
		{
			Name:        "Magnum",
			AlphaPct:    14,
			BetaPct:     5.5,
			AmountKg:    0.028,
			TimeMin:     60,
			Use:         hop.UseBoil,
			Type:        hop.TypeBittering,
			Form:        hop.FormPellet,
			HSIPct:      15,
			Origin:      "Germany",
			Substitutes: "Columbus, Nugget",
			Notes:       "Clean bittering with little aroma.",
		},
		{
			Name:     "Citra",
			AlphaPct: 12,
			BetaPct:  4,
			AmountKg: 0.056,
			TimeMin:  4320,
			Use:      hop.UseDryHop,
			Type:     hop.TypeAroma,
			Form:     hop.FormPellet,
			Origin:   "US",
			Notes:    "Tropical fruit and lime.",
		},
	}

	hops := make([]*hop.Hop, 0, len(library))
	for _, values := range library {
		h, err := hop.FromValues(values)
		if err != nil {
			return nil, fmt.Errorf("seed hop %s: %w", values.Name, err)
		}
		hops = append(hops, h)
	}
	return hops, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	hops, err := Library()
	if err != nil {
		return err
	}

	store := db.NewHopStore(database)
	for _, h := range hops {
		if _, _, err := store.Upsert(ctx, h); err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded", "hops", len(hops))
	return nil
}
