// Package classification Labchat Server.
//
// Calendar and scheduling service for research labs
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//    Version: 0.1.0
//    License: TODO
//    Contact: https://github.com/labchat/labchat-server
//
//    Consumes:
//      - application/json
//
//    Produces:
//      - application/json
// swagger:meta
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/labchat/labchat-server/internal/handler"
	"github.com/labchat/labchat-server/internal/log"
	"github.com/labchat/labchat-server/internal/server"
	"github.com/labchat/labchat-server/pkg/config"
	"github.com/labchat/labchat-server/pkg/event"
	"github.com/labchat/labchat-server/pkg/lab"
	"github.com/labchat/labchat-server/pkg/lookup"
	"github.com/labchat/labchat-server/pkg/storage"
	"github.com/robfig/cron/v3"
)

func main() {
	logger := slog.New(log.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Exiting", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	db, err := storage.NewDatabase(cfg.Postgresql)
	if err != nil {
		return err
	}

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	labService := lab.NewService(lab.NewRepository(db))
	labHandler := lab.NewHandler(labService)

	lookupService := lookup.NewService(logger, lookup.NewRepository(db))
	lookupHandler := lookup.NewHandler(lookupService)

	eventService := event.NewService(logger, event.NewRepository(db), lookupService)
	eventHandler := event.NewHandler(eventService)

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.LookupRefreshSchedule, lookupService.Invalidate)
	if err != nil {
		return fmt.Errorf("failed to schedule lookup cache refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	engine := server.GetEngine(logger, cfg.BasePath, labHandler, lookupHandler, eventHandler)
	return engine.Run()
}
