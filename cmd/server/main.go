package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/mufahq/mufa-backend/internal/config"
	"github.com/mufahq/mufa-backend/internal/engine"
	"github.com/mufahq/mufa-backend/internal/httpapi"
	"github.com/mufahq/mufa-backend/internal/hub"
	"github.com/mufahq/mufa-backend/internal/store"
)

func main() {
	cfg := config.Load()

	log := newLogger(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st hub.Store
	if cfg.DatabaseURL != "" {
		s, err := store.Open(cfg.DatabaseURL, log)
		if err != nil {
			log.Fatal("store open failed", zap.Error(err))
		}
		st = s
	} else {
		log.Warn("DATABASE_URL not set, running without persistence")
	}

	newRand := func() engine.Rand {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	h := hub.New(ctx, st, newRand, log)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.SetupRoutes(h),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		h.Inbox() <- hub.ShutdownHub{}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}
