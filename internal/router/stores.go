package router

import (
	"context"
	"database/sql"
	"fmt"

	mem "pet-health-record/internal/adapters/storage/memory"
	mdb "pet-health-record/internal/adapters/storage/mongodb"
	pg "pet-health-record/internal/adapters/storage/postgres"
	lite "pet-health-record/internal/adapters/storage/sqlite"
	"pet-health-record/internal/domain/pets"
	"pet-health-record/internal/domain/vaccines"
	"pet-health-record/internal/platform/config"
	"pet-health-record/internal/platform/logger"
)

// Stores agrupa los repos de cada módulo. Close libera la conexión subyacente.
type Stores struct {
	Pets     pets.Repository
	Tracking vaccines.Repository

	Close func(ctx context.Context) error
}

// withDefaults completa lo que falte con repos en memoria.
func (s Stores) withDefaults() Stores {
	if s.Pets == nil {
		s.Pets = mem.NewPetRepo()
	}
	if s.Tracking == nil {
		s.Tracking = mem.NewTrackingRepo()
	}
	if s.Close == nil {
		s.Close = func(context.Context) error { return nil }
	}
	return s
}

// OpenStores elige backend según config: postgres → mongo → sqlite → memoria.
func OpenStores(ctx context.Context, cfg *config.Config, log logger.Logger) (Stores, error) {
	kind := cfg.Store()
	log.Info("opening stores", map[string]any{"store": string(kind)})

	switch kind {
	case config.StorePostgres:
		db, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return Stores{}, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return Stores{}, fmt.Errorf("postgres schema: %w", err)
		}
		return sqlStores(db, pg.NewPetsRepo(db), pg.NewTrackingRepo(db)), nil

	case config.StoreMongo:
		client, err := mdb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return Stores{}, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.MongoDB)

		petRepo, err := mdb.NewPetsRepo(ctx, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return Stores{}, err
		}
		trackingRepo, err := mdb.NewTrackingRepo(ctx, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return Stores{}, err
		}
		return Stores{Pets: petRepo, Tracking: trackingRepo, Close: client.Disconnect}, nil

	case config.StoreSQLite:
		db, err := lite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return Stores{}, err
		}
		return sqlStores(db, lite.NewPetsRepo(db), lite.NewTrackingRepo(db)), nil

	default:
		return Stores{}.withDefaults(), nil
	}
}

func sqlStores(db *sql.DB, petRepo pets.Repository, trackingRepo vaccines.Repository) Stores {
	return Stores{
		Pets:     petRepo,
		Tracking: trackingRepo,
		Close:    func(context.Context) error { return db.Close() },
	}
}
