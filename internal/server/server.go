// Package server assembles the application and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/controllers"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/routes"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/services"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/config"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/cache"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/database"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/event"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/metrics"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/middleware"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/reqid"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/router"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/ws"
)

// Start boots the full application and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()

	client, db, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("mongo disconnect failed", "error", err)
		}
	}()

	var mongoLog *logger.MongoHandler
	if config.LogToMongo() {
		mongoLog = logger.NewMongoHandler(db.Collection("logs"))
		logger.AttachHandler(mongoLog)
		defer mongoLog.Close()
	}

	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	// Redis is optional: without it stats are computed per request.
	if err := cache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, stats cache disabled", "error", err)
	}
	defer cache.Close()

	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()

	adminRepo := repositories.NewAdminRepository(db)
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	authSvc := services.NewAuthService(adminRepo)
	adminSvc := services.NewAdminService(adminRepo)
	productSvc := services.NewProductService(productRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo, userRepo)
	userSvc := services.NewUserService(userRepo, orderSvc)
	statsSvc := services.NewStatsService(productRepo, orderRepo, userRepo)

	registerListeners(hub, statsSvc)

	api := &routes.API{
		Auth:     controllers.NewAuthController(authSvc),
		Admins:   controllers.NewAdminController(adminSvc),
		Products: controllers.NewProductController(productSvc),
		Orders:   controllers.NewOrderController(orderSvc),
		Users:    controllers.NewUserController(userSvc),
		Stats:    controllers.NewStatsController(statsSvc),
		Live:     controllers.NewLiveController(hub),
	}

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	routes.RegisterAPI(r, api)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	event.Flush()
	logger.Info("server stopped")
	return nil
}

// registerListeners wires the domain events to the stats cache and the live
// feed.
func registerListeners(hub *ws.Hub, stats *services.StatsService) {
	invalidate := func(any) { stats.Invalidate() }
	for _, name := range []string{
		event.OrderCreated, event.OrderUpdated, event.OrderDeleted,
		event.ProductChanged,
	} {
		event.Listen(name, invalidate)
	}

	event.Listen(event.OrderCreated, func(payload any) {
		hub.Broadcast("order.created", payload)
	})
	event.Listen(event.OrderUpdated, func(payload any) {
		hub.Broadcast("order.updated", payload)
	})
	event.Listen(event.OrderDeleted, func(payload any) {
		hub.Broadcast("order.deleted", payload)
	})
}
