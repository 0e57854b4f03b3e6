// Package cli implements the annexvii command-line surface.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"

	"github.com/greenlist/annexvii/internal/config"
	"github.com/greenlist/annexvii/internal/logging"
	"github.com/greenlist/annexvii/internal/recordstore"
	"github.com/greenlist/annexvii/internal/refdata"
	"github.com/greenlist/annexvii/internal/validation"
)

// environment is everything a command needs wired up.
type environment struct {
	cfg   *config.Config
	ref   *refdata.Store
	store recordstore.Store
}

// setup loads .env when present, reads configuration, configures logging
// and opens the store and reference data.
func setup(ctx context.Context) (*environment, error) {
	// A missing .env file is fine; explicit environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ref := refdata.Default()
	if cfg.Refdata.Dir != "" {
		ref, err = refdata.Load(cfg.Refdata.Dir)
		if err != nil {
			return nil, fmt.Errorf("load reference data from %s: %w", cfg.Refdata.Dir, err)
		}
	}

	openCtx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
	defer cancel()
	store, err := recordstore.Open(openCtx, cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, ref: ref, store: store}, nil
}

func (e *environment) account() string {
	return e.cfg.Account.ID
}

func (e *environment) locale() validation.Locale {
	if strings.EqualFold(e.cfg.Bulk.Locale, "cy") {
		return validation.LocaleCY
	}
	return validation.LocaleEN
}

func (e *environment) close() {
	_ = e.store.Close()
}
