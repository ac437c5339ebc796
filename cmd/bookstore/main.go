package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/bookstore/internal/config"
	"github.com/Skotchmaster/bookstore/internal/events"
	"github.com/Skotchmaster/bookstore/internal/httpserver"
	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/internal/search"
	"github.com/Skotchmaster/bookstore/internal/service"
	"github.com/Skotchmaster/bookstore/pkg/db"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	loggingmw "github.com/Skotchmaster/bookstore/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()

	l := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(l)

	ctx := context.Background()

	gdb, err := config.InitDB(ctx, cfg)
	if err != nil {
		l.Error("db_init_failed", "error", err)
		os.Exit(1)
	}
	r := repo.New(gdb)

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.KafkaBrokers)
		l.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	index, err := buildIndex(ctx, cfg, r)
	if err != nil {
		// search falls back to SQL when no index is available
		l.Warn("search_index_disabled", "error", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler(cfg.IsDevelopment())
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		loggingmw.RequestLogger(l),
		middleware.CORS(),
		middleware.BodyLimit("1M"),
	)

	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo: r, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL(), Events: pub,
		}},
		BookHandler:     &httpserver.BookHTTP{Svc: &service.CatalogService{Repo: r, Index: index, Events: pub}},
		ReviewHandler:   &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: r, Events: pub}},
		CartHandler:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: r}},
		WishlistHandler: &httpserver.WishlistHTTP{Svc: &service.WishlistService{Repo: r}},
		OrderHandler:    &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Events: pub}},
		JWTSecret:       cfg.JWTSecret,
		Ready:           r.Ping,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		l.Info("http_listen", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	go func() {
		<-quit
		l.Warn("force_exit")
		os.Exit(1)
	}()

	l.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("server_shutdown_error", "error", err)
	}
	if err := pub.Close(); err != nil {
		l.Error("publisher_close_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		l.Error("db_close_error", "error", err)
	}

	l.Info("shutdown_complete")
}

// buildIndex connects to Elasticsearch when configured and loads the current
// catalog into it. A nil index with a nil error means search is SQL only.
func buildIndex(ctx context.Context, cfg config.ServiceConfig, r *repo.GormRepo) (service.BookIndex, error) {
	if cfg.ESURL == "" {
		return nil, nil
	}

	client, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		return nil, err
	}
	idx := search.NewESIndex(client, cfg.ESIndex)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := idx.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	books, err := r.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	if err := idx.Reindex(ctx, books); err != nil {
		return nil, err
	}
	return idx, nil
}
