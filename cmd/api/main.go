// @title           Todo Board API
// @version         1.0
// @description     Todo dashboard API with due-today and completed views.
// @host            localhost:8080
// @BasePath        /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TodoBoard/internal/app"
	"TodoBoard/internal/config"

	_ "TodoBoard/docs"

	"github.com/go-pkgz/lgr"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lgr.Fatalf("[ERROR] config: %v", err)
	}
	setupLog(cfg.App.Debug)
	lgr.Printf("[INFO] config loaded, env=%s storage=%s timezone=%s", cfg.App.Env, cfg.Storage.Driver, cfg.App.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, lgr.Default())
	if err != nil {
		lgr.Fatalf("[ERROR] app init: %v", err)
	}
	lgr.Printf("[INFO] app ready, starting HTTP server")
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		lgr.Printf("[INFO] HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lgr.Printf("[ERROR] HTTP server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	lgr.Printf("[INFO] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lgr.Printf("[WARN] HTTP shutdown: %v", err)
	}
	if err := application.Close(shutdownCtx); err != nil {
		lgr.Printf("[WARN] close: %v", err)
		os.Exit(1)
	}
}

func setupLog(debug bool) {
	if debug {
		lgr.Setup(lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces)
		return
	}
	lgr.Setup(lgr.Msec, lgr.LevelBraces)
}
