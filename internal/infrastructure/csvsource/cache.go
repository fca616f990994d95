package csvsource

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
	"github.com/jhoicas/awb-weight-dashboard/pkg/clock"
	"github.com/jhoicas/awb-weight-dashboard/pkg/logger"
)

// Rango permitido para el TTL de la caché.
const (
	MinTTL = 60 * time.Second
	MaxTTL = 300 * time.Second
)

// FailureBackoff tiempo durante el que se sirve un fallo antes de reintentar la descarga.
const FailureBackoff = MinTTL / 6

// Fetcher origen de filas; lo implementa *Loader.
type Fetcher interface {
	Load(ctx context.Context) (entity.RowSet, error)
}

// RefreshHook se invoca en segundo plano tras cada recarga exitosa (p. ej. historial de KPIs).
type RefreshHook func(ctx context.Context, snap entity.Snapshot)

// CacheOptions opciones de la caché.
type CacheOptions struct {
	Clock     clock.Clock
	Logger    *logger.Logger
	OnRefresh RefreshHook
}

// WithClock reemplaza el reloj (tests).
func WithClock(c clock.Clock) func(*CacheOptions) {
	return func(o *CacheOptions) { o.Clock = c }
}

// WithLogger fija el logger.
func WithLogger(l *logger.Logger) func(*CacheOptions) {
	return func(o *CacheOptions) { o.Logger = l }
}

// WithRefreshHook registra un callback posterior a cada recarga exitosa.
func WithRefreshHook(h RefreshHook) func(*CacheOptions) {
	return func(o *CacheOptions) { o.OnRefresh = h }
}

// ClampTTL acota el TTL a [MinTTL, MaxTTL].
func ClampTTL(ttl time.Duration) time.Duration {
	if ttl < MinTTL {
		return MinTTL
	}
	if ttl > MaxTTL {
		return MaxTTL
	}
	return ttl
}

// Cache guarda el último snapshot exitoso durante un TTL.
//
// El snapshot se reemplaza completo bajo el mutex: los lectores ven el anterior
// o el siguiente, nunca uno parcial. Las recargas concurrentes se unifican en una
// sola descarga. Un fallo se sirve solo durante FailureBackoff y nunca reemplaza
// al último snapshot exitoso.
type Cache struct {
	fetcher   Fetcher
	ttl       time.Duration
	clock     clock.Clock
	log       *logger.Logger
	onRefresh RefreshHook

	group singleflight.Group

	hooks sync.WaitGroup

	mu      sync.RWMutex
	current *entity.Snapshot
	failed  *entity.Snapshot
}

// NewCache construye la caché sobre fetcher con el TTL dado (acotado con ClampTTL).
func NewCache(fetcher Fetcher, ttl time.Duration, opts ...func(*CacheOptions)) *Cache {
	o := CacheOptions{Clock: clock.RealClock{}, Logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache{
		fetcher:   fetcher,
		ttl:       ClampTTL(ttl),
		clock:     o.Clock,
		log:       o.Logger.Component("cache"),
		onRefresh: o.OnRefresh,
	}
}

// TTL devuelve el TTL efectivo.
func (c *Cache) TTL() time.Duration { return c.ttl }

// GetOrRefresh devuelve el snapshot en caché si no ha vencido; si no, recarga.
func (c *Cache) GetOrRefresh(ctx context.Context) entity.Snapshot {
	if snap, ok := c.fresh(); ok {
		return snap
	}
	return c.load(ctx)
}

// Refresh fuerza una recarga ignorando el TTL.
func (c *Cache) Refresh(ctx context.Context) entity.Snapshot {
	return c.load(ctx)
}

// Wait espera a que terminen los hooks en curso (apagado ordenado).
func (c *Cache) Wait() { c.hooks.Wait() }

func (c *Cache) fresh() (entity.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.clock.Now()
	if c.current != nil && now.Sub(c.current.LoadedAt) < c.ttl {
		return *c.current, true
	}
	if c.failed != nil && now.Sub(c.failed.LoadedAt) < FailureBackoff {
		return *c.failed, true
	}
	return entity.Snapshot{}, false
}

func (c *Cache) load(ctx context.Context) entity.Snapshot {
	// La descarga compartida no debe cancelarse porque el primer llamador se vaya.
	shared := context.WithoutCancel(ctx)

	v, _, coalesced := c.group.Do("snapshot", func() (interface{}, error) {
		rows, err := c.fetcher.Load(shared)
		now := c.clock.Now()
		if err != nil {
			c.log.Error().Err(err).Dur("retry_in", FailureBackoff).Msg("recarga del CSV fallida")
			failed := entity.FailedSnapshot(err, now)
			c.mu.Lock()
			c.failed = &failed
			c.mu.Unlock()
			return failed, nil
		}

		snap := entity.Snapshot{ID: uuid.New(), LoadedAt: now, Rows: rows}
		c.mu.Lock()
		c.current = &snap
		c.failed = nil
		c.mu.Unlock()

		c.log.Debug().
			Str("snapshot_id", snap.ID.String()).
			Int("rows", rows.Len()).
			Msg("snapshot reemplazado")

		if c.onRefresh != nil {
			c.hooks.Add(1)
			go func() {
				defer c.hooks.Done()
				c.onRefresh(shared, snap)
			}()
		}
		return snap, nil
	})
	if coalesced {
		c.log.Debug().Msg("recarga compartida con otra petición")
	}
	return v.(entity.Snapshot)
}
