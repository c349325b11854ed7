// Package gateway implements the storage gateway of the parish room-booking
// application: users, rooms, bookings and app configuration persisted as JSON
// documents in a key-value store, exposed through operations that mimic a
// remote API.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/audit"
	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/kvstore"
)

// Fixed keys of the persisted state layout.
const (
	keyUsers       = "users"
	keyRooms       = "rooms"
	keyBookings    = "bookings"
	keyCurrentUser = "current_user"
	keyConfig      = "config"
)

// Simulated network latencies applied when a DelayFunc is configured.
const (
	delayConfigUpdate   = 400 * time.Millisecond
	delayLogin          = 500 * time.Millisecond
	delayRegister       = 600 * time.Millisecond
	delayPasswordUpdate = 500 * time.Millisecond
	delayCreateBooking  = 600 * time.Millisecond
)

// DelayFunc models artificial latency before an operation completes. A nil
// DelayFunc disables the simulation.
type DelayFunc func(ctx context.Context, d time.Duration) error

// SimulatedDelay waits for the given duration, honouring context
// cancellation. It is the production DelayFunc.
func SimulatedDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Gateway is the sole mediator between application state and the persistent
// key-value store. Every operation performs its read-modify-write cycle under
// a single lock, so compound writes such as the room-delete cascade are
// atomic within the process. Cross-process writers racing on the same store
// remain last-write-wins at collection granularity.
type Gateway struct {
	mu          sync.RWMutex
	store       kvstore.Store
	idGenerator func() string
	now         func() time.Time
	delay       DelayFunc
	auditor     *audit.Logger
	logger      *slog.Logger
}

// NewGateway constructs a gateway with default dependencies: UUID ids, the
// wall clock, no simulated latency and no audit trail.
func NewGateway(store kvstore.Store) *Gateway {
	return NewGatewayWithLogger(store, nil, nil, nil, nil, nil)
}

// NewGatewayWithLogger constructs a gateway with the provided dependencies.
// Nil dependencies fall back to defaults; a nil delay disables the latency
// simulation and a nil auditor disables the audit trail.
func NewGatewayWithLogger(store kvstore.Store, idGenerator func() string, now func() time.Time, delay DelayFunc, auditor *audit.Logger, logger *slog.Logger) *Gateway {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &Gateway{
		store:       store,
		idGenerator: idGenerator,
		now:         now,
		delay:       delay,
		auditor:     auditor,
		logger:      defaultLogger(logger),
	}
}

// Initialize seeds every absent collection key: one default room, an admin
// and a regular user, an empty booking list and the default configuration.
// It is idempotent; keys that already exist are left untouched.
func (g *Gateway) Initialize(ctx context.Context) (err error) {
	if g == nil {
		return fmt.Errorf("Gateway is nil")
	}

	logger := g.loggerWith(ctx, "Initialize")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to seed storage", "error", err, "error_kind", errorKind(err))
			return
		}
		logger.InfoContext(ctx, "storage ready")
	}()

	g.mu.Lock()
	defer g.mu.Unlock()

	if err = seedIfAbsent(ctx, g.store, keyUsers, seedUsers()); err != nil {
		return
	}
	if err = seedIfAbsent(ctx, g.store, keyRooms, seedRooms()); err != nil {
		return
	}
	if err = seedIfAbsent(ctx, g.store, keyBookings, []Booking{}); err != nil {
		return
	}
	if err = seedIfAbsent(ctx, g.store, keyConfig, seedConfig()); err != nil {
		return
	}
	return
}

func (g *Gateway) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return operationLogger(ctx, g.logger, operation, attrs...)
}

// wait applies the configured artificial latency, if any.
func (g *Gateway) wait(ctx context.Context, d time.Duration) error {
	if g.delay == nil {
		return nil
	}
	return g.delay(ctx, d)
}

// recordAudit appends an event to the audit trail. Audit failures are logged
// but never fail the operation that triggered them.
func (g *Gateway) recordAudit(ctx context.Context, actor, action, target, outcome, detail string) {
	if g.auditor == nil {
		return
	}
	if err := g.auditor.Record(actor, action, target, outcome, detail); err != nil {
		g.loggerWith(ctx, "recordAudit").WarnContext(ctx, "failed to append audit event", "error", err, "action", action)
	}
}

// --- Seed data ---

func seedUsers() []User {
	return []User{
		{
			ID:       "user-admin",
			Username: "admin",
			Password: "admin",
			Name:     "Parish Administrator",
			Role:     RoleAdmin,
		},
		{
			ID:       "user-member",
			Username: "user",
			Password: "user",
			Name:     "Parish Member",
			Role:     RoleUser,
		},
	}
}

func seedRooms() []Room {
	return []Room{
		{
			ID:       "room-parish-hall",
			Name:     "Parish Hall",
			Capacity: 120,
			Features: []string{"Stage", "Kitchen access", "Projector"},
			ImageURL: "",
		},
	}
}

func seedConfig() AppConfig {
	return AppConfig{AppName: "Domus Nostra", AppLogo: ""}
}

// --- JSON-over-KV helpers ---

func seedIfAbsent[T any](ctx context.Context, store kvstore.Store, key string, seed T) error {
	_, ok, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return writeJSON(ctx, store, key, seed)
}

func readJSON[T any](ctx context.Context, store kvstore.Store, key string) (T, bool, error) {
	var value T

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return value, false, err
	}
	if !ok {
		return value, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("decode %q: %w", key, err)
	}
	return value, true, nil
}

func writeJSON[T any](ctx context.Context, store kvstore.Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}
