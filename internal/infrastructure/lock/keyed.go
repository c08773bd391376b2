// Package lock implementa el puerto inventory.Locker: exclusión mutua por producto,
// en proceso (KeyedLocker) o entre réplicas (RedisLocker).
package lock

import (
	"context"
	"sync"

	"github.com/jhoicas/stockledger/internal/application/inventory"
)

var _ inventory.Locker = (*KeyedLocker)(nil)

// KeyedLocker mutex por clave dentro del proceso. Las entradas se liberan cuando nadie las usa,
// así el mapa no crece con cada producto tocado.
type KeyedLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewKeyedLocker construye un locker vacío.
func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{slots: make(map[string]*slot)}
}

// Lock bloquea hasta obtener la clave o hasta que ctx se cancele.
func (l *KeyedLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.release(key, s)
		})
	}, nil
}

func (l *KeyedLocker) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// size número de claves vivas (solo tests).
func (l *KeyedLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
