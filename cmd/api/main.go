package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/itaoit/itstock-backend/api/controllers"
	"github.com/itaoit/itstock-backend/api/routes"
	"github.com/itaoit/itstock-backend/internal/auth"
	"github.com/itaoit/itstock-backend/internal/catalog"
	"github.com/itaoit/itstock-backend/internal/importer"
	"github.com/itaoit/itstock-backend/internal/inventory"
	"github.com/itaoit/itstock-backend/internal/reports"
	"github.com/itaoit/itstock-backend/internal/stock"
	"github.com/itaoit/itstock-backend/internal/tickets"
	"github.com/itaoit/itstock-backend/internal/users"
	"github.com/itaoit/itstock-backend/pkg/cache"
	"github.com/itaoit/itstock-backend/pkg/config"
	"github.com/itaoit/itstock-backend/pkg/logger"
	"github.com/itaoit/itstock-backend/pkg/metrics"
	"github.com/itaoit/itstock-backend/pkg/security"
	"github.com/itaoit/itstock-backend/pkg/sheets"
	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		logg.Warn(context.Background(), "unknown timezone, falling back to local")
		loc = time.Local
	}

	sheetClient, err := sheets.NewClient(context.Background(), cfg.Sheets, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap sheets client", err)
		os.Exit(1)
	}

	var tabCache cache.Cache
	var cachePinger controllers.Pinger
	if strings.EqualFold(cfg.Cache.Backend, "redis") {
		redisCache, err := cache.NewRedis(context.Background(), cfg.Redis, cfg.Cache.TTL)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis cache", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis cache", err)
			}
		}()
		tabCache = redisCache
		cachePinger = redisCache
	} else {
		tabCache = cache.NewMemory(cfg.Cache.TTL)
	}

	registry := prometheus.NewRegistry()
	sheetMetrics := metrics.NewSheetMetrics(registry)

	store := sheetdb.NewStore(sheetClient, tabCache, sheetMetrics, logg)

	adminHash, err := security.HashPassword(cfg.Sheets.DefaultAdminPassword, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to hash default admin password", err)
		os.Exit(1)
	}
	if err := sheetdb.Bootstrap(context.Background(), sheetClient, logg, adminHash); err != nil {
		logg.Error(context.Background(), "failed to bootstrap spreadsheet tabs", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(store)
	itemRepo := inventory.NewRepository(store)
	txnRepo := stock.NewRepository(store)
	ticketRepo := tickets.NewRepository(store)
	userRepo := users.NewRepository(store)

	authService, err := auth.NewService(userRepo, cfg.JWT, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	inventoryService, err := inventory.NewService(itemRepo, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	stockService, err := stock.NewService(itemRepo, txnRepo, loc, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}
	ticketService, err := tickets.NewService(ticketRepo, catalogRepo, loc, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create ticket service", err)
		os.Exit(1)
	}
	userService, err := users.NewService(userRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}
	reportService, err := reports.NewService(txnRepo, itemRepo, ticketRepo, catalogRepo, loc, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}
	importService, err := importer.NewService(catalogRepo, itemRepo, userRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create import service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"spreadsheet": cfg.Sheets.SpreadsheetID,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Cfg:      cfg,
			Logg:     logg,
			Sheet:    sheetClient,
			SheetP:   sheetClient,
			CacheP:   cachePinger,
			Registry: registry,
			Loc:      loc,

			Auth:      authService,
			Inventory: inventoryService,
			Stock:     stockService,
			Tickets:   ticketService,
			Users:     userService,
			Reports:   reportService,
			Importer:  importService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
