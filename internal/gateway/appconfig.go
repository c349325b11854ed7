package gateway

import (
	"context"
	"fmt"
)

// AppConfig returns the configuration singleton, falling back to the seed
// configuration when the key was never written.
func (g *Gateway) AppConfig(ctx context.Context) (AppConfig, error) {
	if g == nil {
		return AppConfig{}, fmt.Errorf("Gateway is nil")
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	cfg, ok, err := readJSON[AppConfig](ctx, g.store, keyConfig)
	if err != nil {
		g.loggerWith(ctx, "AppConfig").ErrorContext(ctx, "failed to read config", "error", err, "error_kind", errorKind(err))
		return AppConfig{}, err
	}
	if !ok {
		return seedConfig(), nil
	}
	return cfg, nil
}

// UpdateAppConfig replaces the configuration singleton wholesale; there are
// no partial-merge semantics.
func (g *Gateway) UpdateAppConfig(ctx context.Context, cfg AppConfig) (err error) {
	if g == nil {
		return fmt.Errorf("Gateway is nil")
	}

	logger := g.loggerWith(ctx, "UpdateAppConfig", "app_name", cfg.AppName)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update config", "error", err, "error_kind", errorKind(err))
			return
		}
		logger.InfoContext(ctx, "config updated")
	}()

	if err = g.wait(ctx, delayConfigUpdate); err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	err = writeJSON(ctx, g.store, keyConfig, cfg)
	return
}
