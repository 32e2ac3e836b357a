package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/scythe504/imposter-backend/internal/config"
	"github.com/scythe504/imposter-backend/internal/database"
	"github.com/scythe504/imposter-backend/internal/game"
	"github.com/scythe504/imposter-backend/internal/server"
	"github.com/scythe504/imposter-backend/internal/websocket"
	"github.com/scythe504/imposter-backend/internal/words"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("[main] server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.ConfigureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bank, err := loadBank(ctx, cfg)
	if err != nil {
		return err
	}
	logrus.Infof("[main] word catalog ready: %d words in %d categories", bank.Len(), len(bank.Categories()))

	registry := game.NewRegistry(bank,
		game.WithCleanupDelay(cfg.RoomCleanupDelay),
		game.WithLogger(logrus.WithField("component", "registry")),
	)
	hub := websocket.NewHub(registry, websocket.Config{
		AllowedOrigin:     cfg.AllowedOrigin,
		MessagesPerSecond: cfg.MessagesPerSecond,
		Burst:             cfg.Burst,
	})
	srv := server.NewServer(cfg.Addr(), cfg.AllowedOrigin, registry, hub)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("[main] shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		registry.Shutdown()
		return err
	})
	return g.Wait()
}

// loadBank picks the catalog source: Postgres (seeded with the embedded
// defaults on first run), then a CSV file, then the embedded defaults.
func loadBank(ctx context.Context, cfg config.Config) (*words.Bank, error) {
	switch {
	case cfg.DatabaseURL != "":
		pg, err := database.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer pg.Close()

		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		if _, err := pg.SeedWords(ctx, words.Default().All()); err != nil {
			return nil, fmt.Errorf("seed words: %w", err)
		}
		return words.Load(ctx, pg)

	case cfg.WordsCSV != "":
		return words.FromCSVFile(cfg.WordsCSV)
	}
	return words.Default(), nil
}
