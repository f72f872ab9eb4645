// Package storage elige el backend de persistencia según la configuración.
package storage

import (
	"context"
	"fmt"

	"daycare-log/internal/adapters/storage/memory"
	pg "daycare-log/internal/adapters/storage/postgres"
	"daycare-log/internal/adapters/storage/sqlite"
	"daycare-log/internal/domain/children"
	"daycare-log/internal/domain/classrooms"
	"daycare-log/internal/domain/events"
	"daycare-log/internal/domain/users"
	"daycare-log/internal/platform/config"

	"go.uber.org/zap"
)

// Repositories agrupa los repos de un mismo backend. Events y Children tienen que
// compartir backend: el fan-out escribe ambos en una transacción.
type Repositories struct {
	Users      users.Repository
	Classrooms classrooms.Repository
	Children   children.Repository
	Events     events.Repository
}

type backend interface {
	Users() users.Repository
	Classrooms() classrooms.Repository
	Children() children.Repository
	Events() events.Repository
}

func From(b backend) Repositories {
	return Repositories{
		Users:      b.Users(),
		Classrooms: b.Classrooms(),
		Children:   b.Children(),
		Events:     b.Events(),
	}
}

// Open devuelve los repos y una función para cerrar la conexión (no-op en memoria).
func Open(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (Repositories, func() error, error) {
	if log == nil {
		log = zap.NewNop()
	}
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", config.StorageMemory:
		log.Info("storage: in-memory")
		return From(memory.NewStore()), noop, nil

	case config.StoragePostgres:
		db, err := pg.Open(ctx, cfg.DSN)
		if err != nil {
			return Repositories{}, noop, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx, db, log); err != nil {
				_ = db.Close()
				return Repositories{}, noop, err
			}
		}
		log.Info("storage: postgres", zap.Bool("auto_migrate", cfg.AutoMigrate))
		return From(pg.NewStore(db)), db.Close, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return Repositories{}, noop, fmt.Errorf("open sqlite: %w", err)
		}
		log.Info("storage: sqlite", zap.String("path", cfg.SQLitePath))
		return From(sqlite.NewStore(db)), db.Close, nil
	}

	return Repositories{}, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
