package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"famchat/internal/common"
	"famchat/internal/dbmysql"
	"famchat/internal/di"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	app, cleanup, err := di.InitializeChatService()
	if err != nil {
		log.Fatalf("Failed to initialize chat service: %v", err)
	}
	defer cleanup()

	logger := app.Logger
	logger.Info("starting chat service", zap.String("environment", app.Config.Server.Environment))

	// Run migrations in main.go where they belong
	if err := dbmysql.Migrate(app.DB); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
	logger.Info("database migration completed")

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(app.Config.Server.Host, app.Config.Server.Port),
		Handler:      newRouter(app),
		ReadTimeout:  time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.Config.Server.WriteTimeout) * time.Second,
	}

	adminLis, err := net.Listen("tcp", net.JoinHostPort(app.Config.Server.Host, app.Config.Server.AdminPort))
	if err != nil {
		logger.Fatal("failed to listen for admin server",
			zap.String("port", app.Config.Server.AdminPort), zap.Error(err))
	}

	go func() {
		if err := app.Admin.Serve(adminLis); err != nil {
			logger.Error("admin server stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("chat service listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down chat service")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// stop accepting work first, then drop live sockets, then the rest
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Warn("http shutdown incomplete", zap.Error(err))
	}
	if err := app.Gateway.Shutdown(ctx); err != nil {
		logger.Warn("gateway shutdown incomplete", zap.Error(err))
	}
	app.Admin.Shutdown()
	logger.Info("chat service stopped")
}

func newRouter(app *di.App) http.Handler {
	r := mux.NewRouter()
	r.Use(common.MetricsMiddleware)
	r.Use(common.LoggingMiddleware(app.Logger))

	r.HandleFunc("/health", healthHandler(app)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/ws", app.Gateway.ServeWS)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(common.AuthMiddleware(app.Tokens))
	app.Handler.RegisterRoutes(api)

	return r
}

func healthHandler(app *di.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		db := "ok"
		if sqlDB, err := app.DB.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
			status = http.StatusServiceUnavailable
			db = "unreachable"
		}
		common.WriteJSON(w, status, map[string]interface{}{
			"database": db,
			"gateway":  app.Gateway.Stats(),
			"rooms":    app.Index.Stats(),
		})
	}
}
