package main

import (
	"go.uber.org/zap"

	"github.com/beesaferoot/gorm-bookings/internal/config"
	"github.com/beesaferoot/gorm-bookings/internal/logging"
	"github.com/beesaferoot/gorm-bookings/store"
)

type app struct {
	cfg       config.Config
	log       *zap.Logger
	resources *store.Resources
	bookings  *store.Bookings
	tickets   *store.Tickets
}

func newApp(debug bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := cfg.OpenDB(debug)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg: cfg,
		log: log,
		resources: store.NewResources(db, store.Defaults{
			Currency: cfg.DefaultCurrency,
			Unit:     cfg.DefaultUnit,
		}),
		bookings: store.NewBookings(db, store.Options{
			Logger:   log,
			MaxUnits: cfg.MaxUnits,
			Location: cfg.Location,
		}),
		tickets: store.NewTickets(db, cfg.DefaultCurrency, log),
	}, nil
}
