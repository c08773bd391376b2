package inventory_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/internal/infrastructure/lock"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/stockledger/pkg/logger"
)

type fixture struct {
	db        *sqlx.DB
	products  repository.ProductRepository
	movements repository.MovementRepository
	engine    *inventory.MovementEngine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &fixture{
		db:        db,
		products:  sqlite.NewProductRepository(db),
		movements: sqlite.NewMovementRepository(db),
		engine:    inventory.NewMovementEngine(sqlite.NewTxRunner(db), lock.NewKeyedLocker(), logger.Nop()),
	}
}

func (f *fixture) seed(t *testing.T, owner, id, name string, qty int64) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID: id, OwnerID: owner, Name: name, Price: decimal.NewFromInt(1),
		Quantity: qty, MinStock: entity.DefaultMinStock, CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) quantity(t *testing.T, owner, id string) int64 {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), owner, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func (f *fixture) ledger(t *testing.T, owner, productID string) []*entity.Movement {
	t.Helper()
	list, err := f.movements.ListByOwner(context.Background(), owner, repository.LedgerFilter{ProductID: productID})
	require.NoError(t, err)
	return list
}

func move(tenant, product, dir string, qty int64) inventory.MovementInput {
	return inventory.MovementInput{TenantID: tenant, ProductID: product, Direction: dir, Quantity: qty, Actor: "ana"}
}

func TestApplyMovement_InOutScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "t1", "p1", "Widget", 10)

	res, err := f.engine.ApplyMovement(ctx, move("t1", "p1", entity.MovementTypeOUT, 4))
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.NewQuantity)
	assert.Equal(t, "Widget", res.ProductName)
	assert.NotEmpty(t, res.MovementID)

	_, err = f.engine.ApplyMovement(ctx, move("t1", "p1", entity.MovementTypeOUT, 10))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(6), f.quantity(t, "t1", "p1"))

	res, err = f.engine.ApplyMovement(ctx, move("t1", "p1", entity.MovementTypeIN, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.NewQuantity)

	ledger := f.ledger(t, "t1", "p1")
	require.Len(t, ledger, 2)
	assert.Equal(t, entity.MovementTypeIN, ledger[0].Type)
	assert.Equal(t, int64(3), ledger[0].Quantity)
	assert.Equal(t, entity.MovementTypeOUT, ledger[1].Type)
	assert.Equal(t, int64(4), ledger[1].Quantity)
	assert.Equal(t, "ana", ledger[0].Actor)
	assert.Equal(t, "Widget", ledger[0].ProductName)
}

func TestApplyMovement_ExactDrainReachesZero(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "t1", "p1", "Widget", 5)

	res, err := f.engine.ApplyMovement(context.Background(), move("t1", "p1", entity.MovementTypeOUT, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.NewQuantity)
}

func TestApplyMovement_LedgerMatchesQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "t1", "p1", "Widget", 0)

	steps := []struct {
		dir string
		qty int64
	}{
		{entity.MovementTypeIN, 7}, {entity.MovementTypeOUT, 2}, {entity.MovementTypeOUT, 9},
		{entity.MovementTypeIN, 1}, {entity.MovementTypeOUT, 6},
	}
	for _, s := range steps {
		_, _ = f.engine.ApplyMovement(ctx, move("t1", "p1", s.dir, s.qty))
	}

	var sum int64
	for _, m := range f.ledger(t, "t1", "p1") {
		sum += m.Delta()
	}
	assert.Equal(t, f.quantity(t, "t1", "p1"), sum)
	assert.Equal(t, int64(0), sum)
}

func TestApplyMovement_InOverflowIsInvalidMagnitude(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "t1", "p1", "Widget", math.MaxInt64-1)

	_, err := f.engine.ApplyMovement(context.Background(), move("t1", "p1", entity.MovementTypeIN, 5))
	assert.ErrorIs(t, err, domain.ErrInvalidMagnitude)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrTransient)
	assert.Equal(t, int64(math.MaxInt64-1), f.quantity(t, "t1", "p1"))
	assert.Empty(t, f.ledger(t, "t1", "p1"))

	res, err := f.engine.ApplyMovement(context.Background(), move("t1", "p1", entity.MovementTypeIN, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), res.NewQuantity)
}

func TestApplyMovement_ForeignTenantIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "t1", "p1", "Widget", 10)

	_, err := f.engine.ApplyMovement(context.Background(), move("t2", "p1", entity.MovementTypeOUT, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(10), f.quantity(t, "t1", "p1"))
	assert.Empty(t, f.ledger(t, "t1", ""))
	assert.Empty(t, f.ledger(t, "t2", ""))
}

func TestApplyMovement_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.ApplyMovement(context.Background(), move("t1", "missing", entity.MovementTypeIN, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_StorageFailureLeavesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "t1", "p1", "Widget", 10)
	_, err := f.db.ExecContext(ctx, `
		CREATE TRIGGER fail_append BEFORE INSERT ON stock_movements
		WHEN NEW.actor = 'boom'
		BEGIN SELECT RAISE(ABORT, 'disk full'); END;`)
	require.NoError(t, err)

	in := move("t1", "p1", entity.MovementTypeOUT, 4)
	in.Actor = "boom"
	_, err = f.engine.ApplyMovement(ctx, in)
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Equal(t, int64(10), f.quantity(t, "t1", "p1"))
	assert.Empty(t, f.ledger(t, "t1", "p1"))
}

func TestApplyMovement_ConcurrentOutflowsNeverOversell(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "t1", "p1", "Widget", 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.ApplyMovement(context.Background(), move("t1", "p1", entity.MovementTypeOUT, 10))
		}(i)
	}
	wg.Wait()

	ok, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(0), f.quantity(t, "t1", "p1"))
	assert.Len(t, f.ledger(t, "t1", "p1"), 1)
}

func TestApplyMovement_ManyConcurrentUnitOutflows(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "t1", "p1", "Widget", 10)

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.ApplyMovement(context.Background(), move("t1", "p1", entity.MovementTypeOUT, 1))
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, int64(0), f.quantity(t, "t1", "p1"))
	assert.Len(t, f.ledger(t, "t1", "p1"), 10)
}

// Las validaciones no deben tocar ni el lock ni la transacción.
type countingTx struct{ calls int }

func (c *countingTx) Run(context.Context, func(repository.ProductRepository, repository.MovementRepository) error) error {
	c.calls++
	return nil
}

type countingLocker struct {
	calls int
	err   error
}

func (c *countingLocker) Lock(context.Context, string) (func(), error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return func() {}, nil
}

func TestApplyMovement_RejectsInvalidInputWithoutStoreAccess(t *testing.T) {
	cases := []struct {
		name string
		in   inventory.MovementInput
		want error
	}{
		{"zero quantity", move("t1", "p1", entity.MovementTypeIN, 0), domain.ErrInvalidMagnitude},
		{"negative quantity", move("t1", "p1", entity.MovementTypeOUT, -3), domain.ErrInvalidMagnitude},
		{"unknown direction", move("t1", "p1", "TRANSFER", 1), domain.ErrInvalidDirection},
		{"lowercase direction", move("t1", "p1", "in", 1), domain.ErrInvalidDirection},
		{"missing tenant", move("", "p1", entity.MovementTypeIN, 1), domain.ErrUnauthorized},
		{"missing product", move("t1", "", entity.MovementTypeIN, 1), domain.ErrInvalidInput},
		{"missing actor", inventory.MovementInput{TenantID: "t1", ProductID: "p1", Direction: entity.MovementTypeIN, Quantity: 1}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx, locker := &countingTx{}, &countingLocker{}
			engine := inventory.NewMovementEngine(tx, locker, nil)

			_, err := engine.ApplyMovement(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, tx.calls)
			assert.Zero(t, locker.calls)
		})
	}
}

func TestApplyMovement_LockFailureIsTransient(t *testing.T) {
	tx := &countingTx{}
	engine := inventory.NewMovementEngine(tx, &countingLocker{err: errors.New("redis down")}, nil)

	_, err := engine.ApplyMovement(context.Background(), move("t1", "p1", entity.MovementTypeIN, 1))
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Zero(t, tx.calls)
}

func TestLockKey(t *testing.T) {
	assert.Equal(t, "lock:inventory:t1:p1", inventory.LockKey("t1", "p1"))
	assert.NotEqual(t, inventory.LockKey("t1", "p1"), inventory.LockKey("t2", "p1"))
}
