package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-tracker/internal/auth"
	"project-tracker/internal/config"
	"project-tracker/internal/database"
	"project-tracker/internal/handlers"
	"project-tracker/internal/logutils"
	"project-tracker/internal/server"

	"github.com/gin-gonic/gin"
	flag "github.com/spf13/pflag"
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	migrateOnly := flag.Bool("migrate-only", false, "apply migrations and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logutils.Log.Fatalf("load config: %v", err)
	}
	logutils.SetLevel(cfg.LogLevel)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg)
	if err != nil {
		logutils.Log.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logutils.Log.Fatalf("migrate: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logutils.Log.WithError(err).Error("seed admin")
	}
	if *migrateOnly {
		logutils.Log.Info("migrations applied")
		return
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	h := handlers.New(db, tokens, cfg.WorkflowStrict)
	r := server.NewRouter(h, tokens, cfg.SessionSecret)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logutils.Log.Infof("starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logutils.Log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logutils.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logutils.Log.Fatalf("graceful shutdown failed: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logutils.Log.Info("server stopped")
}
