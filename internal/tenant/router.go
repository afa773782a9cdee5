package tenant

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"clinic-service/pkg/config"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"
)

// DialFunc opens a database handle for a credential set. The default dials
// PostgreSQL; tests substitute their own.
type DialFunc func(ctx context.Context, creds Credentials) (*gorm.DB, error)

// Router owns the pool of per-tenant database connections. Handles are keyed
// by tenant identifier; each request acquires the handle for its own tenant,
// so no request ever mutates state another request reads.
type Router struct {
	cfg  *config.TenantPoolConfig
	dial DialFunc

	mu   sync.Mutex
	pool map[uint]*poolEntry

	stop     chan struct{}
	stopOnce sync.Once
}

type poolEntry struct {
	fingerprint string
	ready       chan struct{} // closed once the dial finishes
	db          *gorm.DB
	err         error
	lastUsed    atomic.Int64 // unix nanos
}

func (e *poolEntry) touch() {
	e.lastUsed.Store(time.Now().UnixNano())
}

// NewRouter creates a connection router with the default PostgreSQL dialer
func NewRouter(cfg *config.TenantPoolConfig) *Router {
	r := &Router{
		cfg:  cfg,
		pool: make(map[uint]*poolEntry),
		stop: make(chan struct{}),
	}
	r.dial = r.dialPostgres
	go r.janitor()
	return r
}

// NewRouterWithDialer creates a connection router using a custom dialer
func NewRouterWithDialer(cfg *config.TenantPoolConfig, dial DialFunc) *Router {
	r := &Router{
		cfg:  cfg,
		pool: make(map[uint]*poolEntry),
		stop: make(chan struct{}),
	}
	r.dial = dial
	go r.janitor()
	return r
}

// Bind returns a live database handle for the tenant, dialing its database
// on first use and reusing the pooled handle afterwards. Concurrent first
// requests for one tenant share a single dial. A tenant whose stored
// credentials changed gets a fresh handle; the stale one is closed.
func (r *Router) Bind(ctx context.Context, t *Tenant) (*gorm.DB, error) {
	fp := t.Credentials().Fingerprint()

	for {
		r.mu.Lock()
		e, ok := r.pool[t.ID]
		if ok && e.fingerprint != fp {
			// Credentials changed since this handle was dialed.
			delete(r.pool, t.ID)
			r.retire(e)
			ok = false
		}
		if !ok {
			e = &poolEntry{fingerprint: fp, ready: make(chan struct{})}
			r.pool[t.ID] = e
			r.mu.Unlock()
			return r.dialEntry(ctx, t, e)
		}
		// Mark the entry in use while the lock is still held, so the
		// janitor cannot evict it before we wait on it.
		e.touch()
		r.mu.Unlock()

		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if e.err != nil {
			return nil, e.err
		}

		// The entry may have been evicted and closed while we waited.
		r.mu.Lock()
		current := r.pool[t.ID] == e
		r.mu.Unlock()
		if !current {
			continue
		}

		e.touch()
		prometheus.RecordTenantBind("hit")
		return e.db, nil
	}
}

// dialEntry performs the dial for a freshly inserted pool entry and
// publishes the result to any waiters.
func (r *Router) dialEntry(ctx context.Context, t *Tenant, e *poolEntry) (*gorm.DB, error) {
	defer prometheus.TrackTenantBind()()
	log := logger.FromContext(ctx)

	db, err := r.dial(ctx, t.Credentials())
	if err != nil {
		log.Warn("Tenant database dial failed",
			zap.Uint("tenant_id", t.ID),
			zap.String("db_name", t.DBName),
			zap.Error(err))
		e.err = fmt.Errorf("%w: tenant %d", ErrUnreachable, t.ID)
		close(e.ready)

		// Drop the failed entry so the next request re-attempts the dial.
		r.mu.Lock()
		if r.pool[t.ID] == e {
			delete(r.pool, t.ID)
		}
		r.updateGaugeLocked()
		r.mu.Unlock()

		prometheus.RecordTenantBind("unreachable")
		return nil, e.err
	}

	e.db = db
	e.touch()
	close(e.ready)

	r.mu.Lock()
	r.updateGaugeLocked()
	r.mu.Unlock()

	log.Info("Tenant database connected",
		zap.Uint("tenant_id", t.ID),
		zap.String("db_name", t.DBName))
	prometheus.RecordTenantBind("dial")
	return db, nil
}

// Probe dials a credential set, verifies reachability and closes the handle.
// Used by onboarding only; probed connections never enter the pool.
func (r *Router) Probe(ctx context.Context, creds Credentials) error {
	db, err := r.dial(ctx, creds)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	closeGorm(db)
	return nil
}

// dialPostgres is the default dialer: open, ping within the configured
// timeout, then apply the pool limits.
func (r *Router) dialPostgres(ctx context.Context, creds Credentials) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		creds.DBHost, creds.DBPort, creds.DBUsername, creds.DBPassword, creds.DBName, r.cfg.SSLMode)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(r.cfg.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, r.cfg.DialTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxIdleConns(r.cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(r.cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(r.cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(r.cfg.ConnMaxIdleTime)

	return db, nil
}

// janitor evicts pooled handles that have not served a request within the
// configured idle window.
func (r *Router) janitor() {
	interval := r.cfg.IdleEvictAfter / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.evictIdle(time.Now())
		}
	}
}

func (r *Router) evictIdle(now time.Time) {
	cutoff := now.Add(-r.cfg.IdleEvictAfter).UnixNano()

	r.mu.Lock()
	var stale []*poolEntry
	for id, e := range r.pool {
		select {
		case <-e.ready:
		default:
			continue // still dialing
		}
		if e.err == nil && e.lastUsed.Load() < cutoff {
			delete(r.pool, id)
			stale = append(stale, e)
		}
	}
	r.updateGaugeLocked()
	r.mu.Unlock()

	for _, e := range stale {
		closeGorm(e.db)
	}
	if len(stale) > 0 {
		logger.GetLogger().Info("Evicted idle tenant connections", zap.Int("count", len(stale)))
	}
}

// Close stops the janitor and closes every pooled handle
func (r *Router) Close() {
	r.stopOnce.Do(func() { close(r.stop) })

	r.mu.Lock()
	entries := make([]*poolEntry, 0, len(r.pool))
	for id, e := range r.pool {
		delete(r.pool, id)
		entries = append(entries, e)
	}
	r.updateGaugeLocked()
	r.mu.Unlock()

	for _, e := range entries {
		r.retire(e)
	}
}

// Size reports the number of pooled tenant handles
func (r *Router) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pool)
}

// retire closes an entry's handle once its dial has finished. The entry has
// already been removed from the pool.
func (r *Router) retire(e *poolEntry) {
	go func() {
		<-e.ready
		if e.db != nil {
			closeGorm(e.db)
		}
	}()
}

func (r *Router) updateGaugeLocked() {
	prometheus.SetOpenTenantConnections(len(r.pool))
}

func closeGorm(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
