package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sandwich1998/fl1pperb0nk/internal/api"
	"github.com/Sandwich1998/fl1pperb0nk/internal/db"
	"github.com/Sandwich1998/fl1pperb0nk/internal/engine"
	"github.com/Sandwich1998/fl1pperb0nk/internal/jobs"
	"github.com/Sandwich1998/fl1pperb0nk/internal/logger"
	"github.com/Sandwich1998/fl1pperb0nk/internal/wiki"
)

var version = "dev"

func main() {
	port := flag.Int("port", 13370, "HTTP server port")
	dbPath := flag.String("db", "", "SQLite database path (default flipper.db in working dir)")
	flag.Parse()

	// .env is optional; real env vars win.
	godotenv.Load()

	log := logger.New(logger.Config{
		Level:  envOrDefault("LOG_LEVEL", "info"),
		Pretty: envOrDefault("LOG_PRETTY", "true") == "true",
	})
	logger.SetGlobalLogger(log)
	log.Info().Str("version", version).Msg("starting flip scanner")

	database, err := db.Open(*dbPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	cfg := database.LoadConfig()

	client := wiki.NewClient(log)
	loader := wiki.NewLoader(client, log)
	eng := engine.New(loader, log)

	srv := api.NewServer(cfg, eng, loader, database, log)

	scheduler := jobs.New(log)
	if err := scheduler.AddJob("0 * * * * *", jobs.NewSnapshotRefreshJob(loader, log)); err != nil {
		log.Fatal().Err(err).Msg("failed to register snapshot refresh job")
	}
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf("127.0.0.1:%d", *port)
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
