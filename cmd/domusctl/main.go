// Command domusctl is a small operator tool for the parish room-booking
// store: it seeds the configured backend and prints the stored collections.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/audit"
	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/config"
	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/gateway"
	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/kvstore"
	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/logging"
)

func main() {
	logger := logging.NewJSON(os.Stderr, slog.LevelInfo)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, os.Args[1:]); err != nil {
		logger.Error("domusctl failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, args []string) error {
	command := "seed"
	if len(args) > 0 {
		command = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close store", "error", cerr)
		}
	}()

	var delay gateway.DelayFunc
	if cfg.SimulatedLatency {
		delay = gateway.SimulatedDelay
	}
	var auditor *audit.Logger
	if cfg.AuditLogPath != "" {
		auditor = audit.NewLogger(cfg.AuditLogPath)
	}

	g := gateway.NewGatewayWithLogger(store, nil, nil, delay, auditor, logger)
	if err := g.Initialize(ctx); err != nil {
		return fmt.Errorf("seed storage: %w", err)
	}

	switch command {
	case "seed":
		logger.Info("storage seeded", "backend", cfg.StoreBackend)
		return nil
	case "rooms":
		return printRooms(ctx, g)
	case "bookings":
		return printBookings(ctx, g)
	case "config":
		return printConfig(ctx, g)
	default:
		return fmt.Errorf("unknown command %q (expected seed, rooms, bookings or config)", command)
	}
}

func openStore(ctx context.Context, cfg config.Config) (kvstore.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		return kvstore.OpenSQLite(cfg.SQLiteDSN)
	case config.BackendRedis:
		return kvstore.OpenRedis(ctx, kvstore.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return kvstore.NewMemory(), nil
	}
}

func printRooms(ctx context.Context, g *gateway.Gateway) error {
	rooms, err := g.Rooms(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCAPACITY\tFEATURES")
	for _, room := range rooms {
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\n", room.ID, room.Name, room.Capacity, room.Features)
	}
	return w.Flush()
}

func printBookings(ctx context.Context, g *gateway.Gateway) error {
	bookings, err := g.Bookings(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tROOM\tREQUESTER\tSTATUS\tCREATED")
	for _, booking := range bookings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			booking.ID, booking.RoomID, booking.RequesterName, booking.Status, booking.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func printConfig(ctx context.Context, g *gateway.Gateway) error {
	cfg, err := g.AppConfig(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("appName: %s\nappLogo: %s\n", cfg.AppName, cfg.AppLogo)
	return nil
}
