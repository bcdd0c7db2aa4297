package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cli/browser"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"disastermap/internal/api"
	"disastermap/internal/config"
	"disastermap/internal/dataset"
	"disastermap/internal/logging"
	"disastermap/internal/observability"
	"disastermap/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("Server starting", "mode", cfg.Server.Mode, "host", cfg.Server.Host, "port", cfg.Server.Port)

	metrics := observability.NewMetrics()

	// The table is built exactly once, before any interaction is possible,
	// and lives for the process lifetime. A failed load leaves the
	// dashboard serving an empty dataset rather than crashing.
	table, report := dataset.Load(cfg.Data.Path)
	metrics.RecordsLoaded.Set(float64(table.Len()))
	metrics.RowsDropped.Add(float64(report.Dropped))
	slog.Info("dataset loaded", "path", cfg.Data.Path, "records", table.Len(), "dropped", report.Dropped)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := session.NewStore(cfg.Session.TTL, clockwork.NewRealClock())
	sessions.StartSweeper(ctx, cfg.Session.SweepInterval)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))
	router.Use(api.RateLimitMiddleware(20))

	handler := api.NewHandler(table, sessions, metrics)
	handler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	if cfg.Browser.AutoOpen {
		go openDashboard(cfg)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	sessions.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

// openDashboard opens a browser tab after a short delay so the listener is
// up before the page loads.
func openDashboard(cfg *config.Config) {
	time.Sleep(cfg.Browser.Delay)

	url := fmt.Sprintf("http://%s:%d/", cfg.Server.Host, cfg.Server.Port)
	if err := browser.OpenURL(url); err != nil {
		slog.Warn("could not open browser", "url", url, "error", err)
	}
}
