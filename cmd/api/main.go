package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kitchenchain/franchise-api/internal/config"
	"github.com/kitchenchain/franchise-api/internal/handler"
	"github.com/kitchenchain/franchise-api/internal/infra/db"
	infraRepo "github.com/kitchenchain/franchise-api/internal/infra/repository"
	"github.com/kitchenchain/franchise-api/internal/job"
	"github.com/kitchenchain/franchise-api/internal/server"
	"github.com/kitchenchain/franchise-api/internal/usecase"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Default().Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := server.NewLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Warn("db close", slog.Any("error", err))
		}
	}()
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	// repositories
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	storeRepo := infraRepo.NewStoreGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// use cases
	inventoryUC := usecase.NewInventoryUsecase(inventoryRepo, productRepo, storeRepo, cfg.LowStockThreshold, logger)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, productRepo, usecase.UUIDOrderCodes{}, usecase.SystemClock{}, logger)
	catalogUC := usecase.NewCatalogUsecase(productRepo, storeRepo, categoryRepo)

	e := server.New(cfg, logger, server.Handlers{
		Inventory:  handler.NewInventoryHandler(inventoryUC),
		Orders:     handler.NewOrderHandler(orderUC),
		Products:   handler.NewProductHandler(catalogUC),
		Categories: handler.NewCategoryHandler(catalogUC),
		Stores:     handler.NewStoreHandler(catalogUC),
		Ping:       db.Pinger(gormDB),
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, e, cfg.Addr(), logger)
	})
	if cfg.AutoCancelEnabled {
		autoCancel := job.NewAutoCancel(orderUC, cfg.AutoCancelHour, logger)
		g.Go(func() error {
			return autoCancel.Run(ctx)
		})
	}

	return g.Wait()
}
