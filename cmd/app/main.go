package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"visit-scheduler/internal/config"
	windowCreate "visit-scheduler/internal/http-server/handlers/availability_windows/create"
	windowDelete "visit-scheduler/internal/http-server/handlers/availability_windows/delete"
	windowGet "visit-scheduler/internal/http-server/handlers/availability_windows/get"
	windowUpdate "visit-scheduler/internal/http-server/handlers/availability_windows/update"
	slotGet "visit-scheduler/internal/http-server/handlers/slots/get"
	timeOffCreate "visit-scheduler/internal/http-server/handlers/time_off/create"
	timeOffDelete "visit-scheduler/internal/http-server/handlers/time_off/delete"
	timeOffGet "visit-scheduler/internal/http-server/handlers/time_off/get"
	timeOffUpdate "visit-scheduler/internal/http-server/handlers/time_off/update"
	visitCreate "visit-scheduler/internal/http-server/handlers/visits/create"
	visitGet "visit-scheduler/internal/http-server/handlers/visits/get"
	visitUpdate "visit-scheduler/internal/http-server/handlers/visits/update"
	"visit-scheduler/internal/http-server/middleware/auth"
	"visit-scheduler/internal/lock"
	svc "visit-scheduler/internal/service"
	"visit-scheduler/internal/storage/postgres"
	slogpretty "visit-scheduler/pkg/handlers/slogPretty"
	mwlogger "visit-scheduler/pkg/middleware/mwLogger"
	"visit-scheduler/pkg/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	service := svc.NewService(storage, locker, cfg.Scheduler)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)
	router.Use(auth.New(log, cfg.JWTSecret))

	// Scheduling core
	router.Get("/scheduling/slots", slotGet.New(log, service))
	router.Get("/scheduling/visits", visitGet.New(log, service))
	router.Post("/scheduling/visits", visitCreate.New(log, service))
	router.Patch("/scheduling/visits", visitUpdate.New(log, service))

	// Availability Windows
	router.Post("/availability_windows", windowCreate.New(log, service))
	router.Get("/availability_windows/{id}", windowGet.New(log, service))
	router.Put("/availability_windows/{id}", windowUpdate.New(log, service))
	router.Delete("/availability_windows/{id}", windowDelete.New(log, service))

	// Time Off
	router.Post("/time_off", timeOffCreate.New(log, service))
	router.Get("/time_off/{id}", timeOffGet.New(log, service))
	router.Put("/time_off/{id}", timeOffUpdate.New(log, service))
	router.Delete("/time_off/{id}", timeOffDelete.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if storage != nil {
		if err := storage.Close(); err != nil {
			log.Error("Failed to close storage", sl.Err(err))
		} else {
			log.Info("Storage closed")
		}
	} else {
		log.Debug("Storage is nil, nothing to close")
	}

	if locker != nil {
		if err := locker.Close(); err != nil {
			log.Error("Failed to close locker", sl.Err(err))
		} else {
			log.Info("Locker closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
