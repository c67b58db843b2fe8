package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/Gunvolt24/pos_print/pkg/metrics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Проверка, что ConfigCache удовлетворяет интерфейсу ConfigSource.
var _ ports.ConfigSource = (*ConfigCache)(nil)

// ErrConfigFetch — хранилище конфигурации недоступно или вернуло ошибку.
var ErrConfigFetch = errors.New("printer config fetch failed")

const (
	DefaultTTL          = 60 * time.Second
	DefaultFetchTimeout = 3 * time.Second
	DefaultRetryBackoff = 5 * time.Second

	flightKey = "printer-config"
)

// ConfigCache — кэш снимка конфигурации печати с TTL.
//
// Конкурентные Get после истечения TTL разделяют одну выборку (singleflight).
// Get ждёт выборку не дольше, чем живёт контекст вызывающего: по его истечении
// отдаётся запасной снимок, а выборка продолжается в фоне.
// При ошибке хранилища отдаётся последний известный снимок, а если его нет — пустой,
// который не кэшируется. После ошибки повторная выборка не чаще retryBackoff.
//
// Invalidate увеличивает поколение: выборка, начатая до него, не считается свежей.
type ConfigCache struct {
	store        ports.PrinterConfigStore
	log          ports.Logger
	ttl          time.Duration
	fetchTimeout time.Duration
	retryBackoff time.Duration
	now          func() time.Time

	mu          sync.RWMutex
	snap        *domain.ConfigSnapshot
	invalidated bool
	retryAt     time.Time
	gen         uint64 // растёт на каждом Invalidate
	snapGen     uint64 // поколение, в котором начата выборка snap

	group singleflight.Group
}

// Option — настройка ConfigCache.
type Option func(*ConfigCache)

// WithTTL — время жизни снимка.
func WithTTL(ttl time.Duration) Option {
	return func(c *ConfigCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithFetchTimeout — потолок одной выборки из хранилища.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *ConfigCache) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithRetryBackoff — пауза после неудачной выборки (0 — без паузы).
func WithRetryBackoff(d time.Duration) Option {
	return func(c *ConfigCache) {
		if d >= 0 {
			c.retryBackoff = d
		}
	}
}

// WithClock — источник времени (тесты).
func WithClock(now func() time.Time) Option {
	return func(c *ConfigCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewConfigCache — конструктор ConfigCache.
func NewConfigCache(store ports.PrinterConfigStore, log ports.Logger, opts ...Option) *ConfigCache {
	c := &ConfigCache{
		store:        store,
		log:          log,
		ttl:          DefaultTTL,
		fetchTimeout: DefaultFetchTimeout,
		retryBackoff: DefaultRetryBackoff,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get — актуальный снимок. Никогда не возвращает nil.
func (c *ConfigCache) Get(ctx context.Context) *domain.ConfigSnapshot {
	if snap, op := c.cached(c.now()); op != "" {
		metrics.ConfigCacheOps.WithLabelValues(op).Inc()
		return snap
	}

	select {
	case res := <-c.load(ctx, false):
		return res.Val.(*domain.ConfigSnapshot)
	case <-ctx.Done():
		snap, op := c.fallback(c.now())
		metrics.ConfigCacheOps.WithLabelValues(op).Inc()
		c.log.Warnf(ctx, "printer config fetch outlived caller (%v); serving %s snapshot", ctx.Err(), op)
		return snap
	}
}

// Invalidate — следующий Get пойдёт в хранилище. Старый снимок остаётся запасным на случай ошибки.
func (c *ConfigCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.gen++
	c.invalidated = true
	c.retryAt = time.Time{}
	c.mu.Unlock()

	// новые Get не должны присоединяться к выборке, начатой до изменения
	c.group.Forget(flightKey)

	metrics.ConfigCacheOps.WithLabelValues("invalidate").Inc()
	c.log.Infof(ctx, "printer config invalidated")
}

// WarmUp — принудительная выборка при старте; ошибка возвращается, но кэш всё равно отвечает.
func (c *ConfigCache) WarmUp(ctx context.Context) error {
	res := <-c.load(ctx, true)
	return res.Err
}

// ------вспомогательные функции------

// cached — снимок без похода в хранилище и метка операции; пустая метка — нужна выборка.
func (c *ConfigCache) cached(now time.Time) (*domain.ConfigSnapshot, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snap != nil && !c.invalidated && c.snap.Age(now) < c.ttl {
		return c.snap, "hit"
	}
	if now.Before(c.retryAt) {
		if c.snap != nil {
			return c.snap, "stale"
		}
		return domain.EmptySnapshot(now), "empty"
	}
	return nil, ""
}

// fallback — последний известный снимок или пустой, если его нет.
func (c *ConfigCache) fallback(now time.Time) (*domain.ConfigSnapshot, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snap != nil {
		return c.snap, "stale"
	}
	return domain.EmptySnapshot(now), "empty"
}

// load — одна выборка на всех конкурентных вызывающих.
func (c *ConfigCache) load(ctx context.Context, force bool) <-chan singleflight.Result {
	return c.group.DoChan(flightKey, func() (any, error) {
		if !force {
			// пока ждали, предыдущая выборка могла обновить снимок
			if snap, op := c.cached(c.now()); op == "hit" {
				metrics.ConfigCacheOps.WithLabelValues(op).Inc()
				return snap, nil
			}
		}
		return c.refresh(ctx)
	})
}

// refresh — выборка и атомарная замена снимка; при ошибке — запасной снимок и ошибка.
func (c *ConfigCache) refresh(ctx context.Context) (*domain.ConfigSnapshot, error) {
	// отмена запроса одного вызывающего не должна обрывать общую выборку
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
	defer cancel()

	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	fresh, err := c.fetch(fetchCtx)
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if gen == c.gen {
			c.retryAt = now.Add(c.retryBackoff)
		}
		if c.snap != nil {
			metrics.ConfigCacheOps.WithLabelValues("stale").Inc()
			c.log.Warnf(ctx, "%v; serving snapshot from %s", err, c.snap.FetchedAt.Format(time.RFC3339))
			return c.snap, err
		}
		metrics.ConfigCacheOps.WithLabelValues("empty").Inc()
		c.log.Warnf(ctx, "%v; serving empty snapshot", err)
		return domain.EmptySnapshot(now), err
	}

	fresh.FetchedAt = now
	if c.snap == nil || gen >= c.snapGen {
		c.snap, c.snapGen = fresh, gen
	}
	if gen != c.gen {
		c.log.Infof(ctx, "printer config invalidated during fetch; next get refetches")
	} else {
		c.invalidated = false
		c.retryAt = time.Time{}
	}

	metrics.ConfigCacheOps.WithLabelValues("refresh").Inc()
	metrics.ConfigDevices.Set(float64(len(c.snap.Devices)))
	return c.snap, nil
}

// fetch — три независимых чтения параллельно.
func (c *ConfigCache) fetch(ctx context.Context) (*domain.ConfigSnapshot, error) {
	var (
		devices  []domain.PrinterDevice
		rules    []domain.RoutingRule
		branding *domain.Branding
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if devices, err = c.store.ListActiveDevices(gctx); err != nil {
			return fmt.Errorf("devices: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rules, err = c.store.ListRoutingRules(gctx); err != nil {
			return fmt.Errorf("routing rules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if branding, err = c.store.GetBranding(gctx); err != nil {
			return fmt.Errorf("branding: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFetch, err)
	}
	return &domain.ConfigSnapshot{Devices: devices, Rules: rules, Branding: branding}, nil
}
