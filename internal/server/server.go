package server

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	swaggerUI "github.com/tx7do/kratos-swagger-ui"

	"github.com/go-tangra/go-tangra-mainboard/internal/config"
	"github.com/go-tangra/go-tangra-mainboard/internal/metrics"
	"github.com/go-tangra/go-tangra-mainboard/internal/store"
)

// New builds the HTTP server with all routes. Routes under /api/v1 run the
// metrics and API-secret middleware; health, metrics, and Swagger UI are
// registered via HandleFunc/HandlePrefix and bypass the middleware chain.
func New(cfg *config.Config, db *store.Store, version string, logger log.Logger, openApiData []byte) *kratoshttp.Server {
	srv := kratoshttp.NewServer(
		kratoshttp.Address(cfg.Listen),
		kratoshttp.Middleware(
			metrics.Server(),
			ApiSecretMiddleware(cfg.ApiSecret),
		),
	)

	h := NewHandler(db, cfg.FormFactor, version, logger)

	r := srv.Route("/api/v1")
	r.GET("/components", h.ListComponents)
	r.GET("/status", h.ComponentStatus)
	r.GET("/diagnostics", h.Diagnostics)
	r.POST("/boards", h.RegisterBoard)
	r.GET("/boards", h.ListBoards)
	r.GET("/boards/{id}", h.GetBoard)
	r.DELETE("/boards/{id}", h.DeleteBoard)

	srv.HandleFunc("/healthz", h.Health)
	srv.HandlePrefix("/metrics", metrics.Handler())

	if cfg.EnableSwagger && len(openApiData) > 0 {
		swaggerUI.RegisterSwaggerUIServerWithOption(
			srv,
			swaggerUI.WithTitle("Mainboard Registry"),
			swaggerUI.WithMemoryData(openApiData, "yaml"),
		)
	}

	return srv
}

// Run starts the HTTP server and blocks until the context is cancelled.
func Run(ctx context.Context, cfg *config.Config, version string, openApiData []byte) error {
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
	)
	helper := log.NewHelper(logger)

	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	metrics.Register(db)

	srv := New(cfg, db, version, logger, openApiData)

	// Optional retention purge goroutine.
	if cfg.RetentionDays > 0 {
		go runPurgeLoop(ctx, db, helper, cfg.RetentionDays, cfg.PurgeInterval)
	}

	// Graceful shutdown when the caller cancels the context.
	go func() {
		<-ctx.Done()
		helper.Info("shutting down...")
		_ = srv.Stop(context.Background())
	}()

	helper.Infof("board registry listening on %s (db: %s)", cfg.Listen, cfg.DatabasePath)
	if cfg.EnableSwagger && len(openApiData) > 0 {
		helper.Infof("swagger UI available at http://%s/docs/", cfg.Listen)
	}
	if cfg.RetentionDays > 0 {
		helper.Infof("retention: %d days, purge interval: %s", cfg.RetentionDays, cfg.PurgeInterval)
	}

	return srv.Start(ctx)
}

func runPurgeLoop(ctx context.Context, db *store.Store, helper *log.Helper, retentionDays int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			olderThan := time.Duration(retentionDays) * 24 * time.Hour
			n, err := db.Purge(ctx, olderThan)
			if err != nil {
				helper.Errorf("purge error: %v", err)
			} else if n > 0 {
				helper.Infof("purged %d boards older than %d days", n, retentionDays)
			}
		}
	}
}
