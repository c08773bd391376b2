package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/internal/infrastructure/lock"
	"github.com/jhoicas/stockledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/stockledger/pkg/config"
	"github.com/jhoicas/stockledger/pkg/logger"
)

// store agrupa los adaptadores de persistencia del driver elegido.
type store struct {
	products   repository.ProductRepository
	movements  repository.MovementRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	txRunner   inventory.TxRunner
	close      func()
}

// openStoreFunc permite sustituir el almacenamiento en pruebas de run.
var openStoreFunc = openStore

func openStore(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("almacenamiento SQLite listo")
		return &store{
			products:   sqlite.NewProductRepository(db),
			movements:  sqlite.NewMovementRepository(db),
			categories: sqlite.NewCategoryRepository(db),
			suppliers:  sqlite.NewSupplierRepository(db),
			txRunner:   sqlite.NewTxRunner(db),
			close:      func() { _ = db.Close() },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("almacenamiento PostgreSQL listo")
		return &store{
			products:   postgres.NewProductRepository(pool),
			movements:  postgres.NewMovementRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			suppliers:  postgres.NewSupplierRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver desconocido %q", cfg.Driver)
}

// newLocker usa Redis si está configurado; si no, un mutex por clave en memoria.
func newLocker(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (inventory.Locker, func(), error) {
	if !cfg.Enabled() {
		log.Info().Msg("lock por producto en memoria")
		return lock.NewKeyedLocker(), func() {}, nil
	}
	client, err := lock.NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.Addr).Msg("lock por producto en Redis")
	locker := lock.NewRedisLocker(client, lock.RedisConfig{TTL: time.Duration(cfg.LockTTLSec) * time.Second}, log)
	return locker, func() { _ = client.Close() }, nil
}
