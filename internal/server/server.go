// Package server boots the Atelier HTTP API: config, database, cache,
// storage, queue workers, event listeners, then the router.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skbags/atelier/app/jobs"
	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/app/routes"
	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/config"
	"github.com/skbags/atelier/pkg/cache"
	"github.com/skbags/atelier/pkg/database"
	"github.com/skbags/atelier/pkg/event"
	"github.com/skbags/atelier/pkg/logger"
	"github.com/skbags/atelier/pkg/metrics"
	"github.com/skbags/atelier/pkg/middleware"
	"github.com/skbags/atelier/pkg/migration"
	"github.com/skbags/atelier/pkg/queue"
	"github.com/skbags/atelier/pkg/reqid"
	"github.com/skbags/atelier/pkg/router"
	"github.com/skbags/atelier/pkg/storage"
	"github.com/skbags/atelier/pkg/ws"
)

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM, then
// drains in-flight requests before returning.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	// The cache is an optimisation, not a dependency; boot continues
	// without Redis.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}

	storage.Connect()

	admins := repositories.NewAdminRepository(database.DB)
	if err := services.NewAuthService(admins).EnsureDefaultAdmin(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startQueue(ctx)
	registerListeners()

	go ws.OrderFeed.Run()

	handler := buildHandler()
	addr := ":" + config.AppPort()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("atelier listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	event.Flush()
	return nil
}

// buildHandler assembles the middleware stack and routes.
//
// Stack (outermost → innermost):
//  1. Prometheus metrics — outermost for accurate total latency
//  2. Recovery           — catches panics before they kill the goroutine
//  3. Request ID         — inject unique ID before anything logs
//  4. Logger             — logs request_id from context
//  5. CORS
//  6. Rate limiter
func buildHandler() http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	routes.RegisterAPI(r)

	return r.Handler()
}

// startQueue selects the queue driver from config, registers job types,
// and launches workers tied to ctx.
func startQueue(ctx context.Context) {
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		logger.Info("queue: using redis driver")
	}
	queue.UseDB(database.DB)
	jobs.RegisterJobs()
	queue.StartWorkers(ctx, 4)
}

// registerListeners wires the order.placed event to its consumers: the
// admin dashboard websocket and the confirmation email job.
func registerListeners() {
	event.Listen(services.EventOrderPlaced, func(payload interface{}) {
		order, ok := payload.(*models.Order)
		if !ok {
			return
		}

		if msg, err := json.Marshal(map[string]interface{}{
			"event": services.EventOrderPlaced,
			"order": order,
		}); err == nil {
			ws.OrderFeed.Broadcast <- msg
		}

		if err := queue.Dispatch(jobs.OrderConfirmationJob{OrderID: order.ID}); err != nil {
			logger.Error("dispatch order confirmation", "order_id", order.ID, "error", err)
		}
	})
}
