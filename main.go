// Command airdist computes great-circle distances between all unique pairs
// of places. Places are loaded from a CSV or xlsx file, or generated at
// random. Distances use the spherical approximation of Earth.
//
// Usage: airdist [n]
//
//	n: (Optional) number of places to generate randomly. If provided, n must
//	   be an integer >= 2. Without it, places come from the configured file
//	   (places.csv by default).
//
// "airdist serve" starts the HTTP surface instead.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"airdist/internal/calculator"
	"airdist/internal/config"
	"airdist/internal/models"
	"airdist/internal/places"
	"airdist/internal/report"
	"airdist/internal/server"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

func main() {
	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		runServer(cfg, logger)
		return
	}

	placeSet := loadPlaces(cfg, logger)

	analysis, err := calculator.Analyze(placeSet)
	if err != nil {
		if errors.Is(err, models.ErrTooFewPlaces) {
			fatal("Need at least 2 places to compare, got %d", len(placeSet))
		}
		fatal("Analysis failed: %v", err)
	}

	fmt.Print(report.Format(analysis))
	fmt.Println(report.Summary(analysis))

	if cfg.ExportPath != "" {
		if err := places.WriteResults(cfg.ExportPath, analysis); err != nil {
			fatal("Failed to export results: %v", err)
		}
		logger.Info("Results exported", "path", cfg.ExportPath)
	}
}

// loadPlaces resolves the place set: a numeric argument selects random
// generation, otherwise the configured file is read.
func loadPlaces(cfg *config.Config, logger *slog.Logger) []models.Place {
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fatal("Number of places must be an integer, got %s", os.Args[1])
		}
		if n < 2 {
			// No place pairs exist below two places.
			fatal("Number of places must be at least 2, got %d", n)
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		placeSet, err := places.Generate(rng, n)
		if err != nil {
			fatal("Failed to generate places: %v", err)
		}
		return placeSet
	}

	load := places.LoadCSV
	if strings.HasSuffix(strings.ToLower(cfg.PlacesFile), ".xlsx") {
		load = places.LoadExcel
	}
	placeSet, err := load(cfg.PlacesFile)
	if err != nil {
		fatal("Failed to load places from %s: %v", cfg.PlacesFile, err)
	}

	logger.Debug("Places loaded", "count", len(placeSet), "file", cfg.PlacesFile)
	return placeSet
}

func runServer(cfg *config.Config, logger *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Server stopped gracefully.")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)
		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
