package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"comanda/internal/comercial"
	"comanda/internal/commons"
	"comanda/internal/infrastructure/logger"
	"comanda/internal/infrastructure/mysql"
	"comanda/internal/menuitem"
	"comanda/internal/order"
	"comanda/internal/realtime"
	"comanda/internal/server"
	"comanda/internal/table"
)

func main() {
	cfg, err := commons.LoadConfig("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	zapLogger.Info("database connected")

	menuItemRepo := menuitem.NewGormRepository(db)
	comercialRepo := comercial.NewGormRepository(db)
	tableRepo := table.NewGormRepository(db)

	orderCtrl, orderSvc := order.NewModule(db, menuItemRepo, comercialRepo, zapLogger)
	tableCtrl := table.NewController(tableRepo, zapLogger)
	menuItemCtrl := menuitem.NewController(menuItemRepo, zapLogger)

	hub := realtime.NewHub(zapLogger)
	socketHandler := realtime.NewHandler(hub, orderSvc, menuItemRepo, zapLogger)

	router := server.NewRouter(orderCtrl, tableCtrl, menuItemCtrl, socketHandler, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	zapLogger.Info("server stopped gracefully")
}
