package gateway_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/gateway"
	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/kvstore"
	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/testfixtures"
)

type testEnv struct {
	gateway *gateway.Gateway
	store   *kvstore.Memory
	clock   *testfixtures.Clock
	ids     *testfixtures.IDGenerator
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	store := kvstore.NewMemory()
	clock := testfixtures.NewClock(time.Time{})
	ids := testfixtures.NewIDGenerator("generated")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	g := gateway.NewGatewayWithLogger(store, ids.NextFunc(), clock.NowFunc(), nil, nil, logger)
	if err := g.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	return testEnv{gateway: g, store: store, clock: clock, ids: ids}
}

func rawKey(t *testing.T, store *kvstore.Memory, key string) []byte {
	t.Helper()

	raw, ok, err := store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("failed to read key %q: %v", key, err)
	}
	if !ok {
		t.Fatalf("expected key %q to be present", key)
	}
	return raw
}

func TestGateway_Initialize(t *testing.T) {
	t.Run("seeds absent collections", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()

		rooms, err := env.gateway.Rooms(ctx)
		if err != nil {
			t.Fatalf("Rooms returned error: %v", err)
		}
		if len(rooms) != 1 {
			t.Fatalf("expected one seed room, got %d", len(rooms))
		}
		if rooms[0].Name != "Parish Hall" {
			t.Fatalf("unexpected seed room name: %q", rooms[0].Name)
		}

		bookings, err := env.gateway.Bookings(ctx)
		if err != nil {
			t.Fatalf("Bookings returned error: %v", err)
		}
		if len(bookings) != 0 {
			t.Fatalf("expected empty booking seed, got %d entries", len(bookings))
		}

		cfg, err := env.gateway.AppConfig(ctx)
		if err != nil {
			t.Fatalf("AppConfig returned error: %v", err)
		}
		if cfg.AppName != "Domus Nostra" {
			t.Fatalf("unexpected seed config: %+v", cfg)
		}

		admin, err := env.gateway.Login(ctx, "admin", "admin")
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		if admin == nil || admin.Role != gateway.RoleAdmin {
			t.Fatalf("expected seeded admin account, got %+v", admin)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()

		before := map[string][]byte{}
		for _, key := range []string{"users", "rooms", "bookings", "config"} {
			before[key] = rawKey(t, env.store, key)
		}

		if err := env.gateway.Initialize(ctx); err != nil {
			t.Fatalf("second Initialize returned error: %v", err)
		}

		for key, expected := range before {
			if got := rawKey(t, env.store, key); !bytes.Equal(got, expected) {
				t.Fatalf("key %q changed across initializations:\n before: %s\n after:  %s", key, expected, got)
			}
		}
	})

	t.Run("does not overwrite existing data", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()

		added, err := env.gateway.AddRoom(ctx, testfixtures.RoomInput("Chapel Annex"))
		if err != nil {
			t.Fatalf("AddRoom returned error: %v", err)
		}

		if err := env.gateway.Initialize(ctx); err != nil {
			t.Fatalf("Initialize returned error: %v", err)
		}

		rooms, err := env.gateway.Rooms(ctx)
		if err != nil {
			t.Fatalf("Rooms returned error: %v", err)
		}
		if len(rooms) != 2 {
			t.Fatalf("expected seed room plus added room, got %d", len(rooms))
		}
		if rooms[1].ID != added.ID {
			t.Fatalf("expected added room to survive reseeding, got %+v", rooms)
		}
	})
}

func TestSimulatedDelay(t *testing.T) {
	t.Run("returns promptly for non-positive durations", func(t *testing.T) {
		if err := gateway.SimulatedDelay(context.Background(), 0); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := gateway.SimulatedDelay(ctx, time.Minute)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestGateway_LatencyAppliesToOperations(t *testing.T) {
	store := kvstore.NewMemory()
	clock := testfixtures.NewClock(time.Time{})
	ids := testfixtures.NewIDGenerator("generated")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	waits := make([]time.Duration, 0, 1)
	delay := func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	g := gateway.NewGatewayWithLogger(store, ids.NextFunc(), clock.NowFunc(), delay, nil, logger)
	ctx := context.Background()
	if err := g.Initialize(ctx); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if _, err := g.Login(ctx, "admin", "admin"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if len(waits) != 1 || waits[0] != 500*time.Millisecond {
		t.Fatalf("expected a single 500ms wait for login, got %v", waits)
	}

	waits = waits[:0]
	if _, err := g.CreateBooking(ctx, testfixtures.BookingInput("room-parish-hall")); err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if len(waits) != 1 || waits[0] != 600*time.Millisecond {
		t.Fatalf("expected a single 600ms wait for booking creation, got %v", waits)
	}

	waits = waits[:0]
	if _, err := g.Rooms(ctx); err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	if len(waits) != 0 {
		t.Fatalf("room reads should not wait, got %v", waits)
	}

	waits = waits[:0]
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	failing := gateway.NewGatewayWithLogger(store, ids.NextFunc(), clock.NowFunc(), gateway.SimulatedDelay, nil, logger)
	if _, err := failing.Login(canceled, "admin", "admin"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled from delayed login, got %v", err)
	}
}
