package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"avaliacoes/internal/feed"
	"avaliacoes/internal/reviews"
	"avaliacoes/internal/server"
	"avaliacoes/pkg/config"
	"avaliacoes/pkg/database"
	"avaliacoes/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found")
	}

	cfg := config.Load()

	if err := logger.Init(logger.Options{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxFiles:    cfg.LogMaxFiles,
	}); err != nil {
		logger.Fatal("init logger: ", err)
	}

	db := database.MustOpen(cfg.DB)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("db migrate failed: ", err)
	}
	logger.Info("migration executed: ", cfg.DB.Path)

	repo, err := reviews.NewRepo(context.Background(), db)
	if err != nil {
		logger.Fatal("prepare statements: ", err)
	}
	defer repo.Close()

	hub := feed.NewHub()
	router := server.NewRouter(cfg, server.Deps{DB: db, Reviews: repo, Feed: hub})

	httpSrv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("server running on http://localhost:%s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Infof("shutdown signal received: %s", sig)
	case err := <-errCh:
		logger.Error("server error: ", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error: ", err)
	}
	logger.Info("server stopped")
}
