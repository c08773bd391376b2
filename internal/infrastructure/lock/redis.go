package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/pkg/logger"
)

var _ inventory.Locker = (*RedisLocker)(nil)

// ErrLockBusy el lock sigue tomado tras agotar los reintentos.
var ErrLockBusy = errors.New("lock ocupado, intente de nuevo")

// Libera solo si el valor sigue siendo el nuestro (evita borrar el lock de otro tras expirar el TTL).
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisConfig parámetros del lock distribuido.
type RedisConfig struct {
	TTL        time.Duration // vida máxima del lock si el proceso muere sin liberarlo
	Retries    int
	RetryDelay time.Duration
}

// RedisLocker lock distribuido con SET NX + TTL. Sirve cuando varias réplicas comparten la base.
type RedisLocker struct {
	client redis.UniversalClient
	cfg    RedisConfig
	log    *logger.Logger
}

// NewRedisLocker construye el locker. Valores cero toman defaults (TTL 5s, 50 intentos cada 50ms).
func NewRedisLocker(client redis.UniversalClient, cfg RedisConfig, log *logger.Logger) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Second
	}
	if cfg.Retries <= 0 {
		cfg.Retries = 50
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 50 * time.Millisecond
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RedisLocker{client: client, cfg: cfg, log: log.Named("redis_lock")}
}

// NewRedisClient abre el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Lock intenta tomar la clave con reintentos. El unlock devuelto usa un contexto propio:
// debe liberar aunque el de la petición ya esté cancelado.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	value := uuid.New().String()

	for attempt := 0; attempt < l.cfg.Retries; attempt++ {
		ok, err := l.client.SetNX(ctx, key, value, l.cfg.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("redis setnx %s: %w", key, err)
		}
		if ok {
			return func() { l.release(key, value) }, nil
		}

		timer := time.NewTimer(l.cfg.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrLockBusy, key)
}

func (l *RedisLocker) release(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, value).Err(); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el lock; expirará por TTL")
	}
}
