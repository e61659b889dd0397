package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"prism/internal/config"
	"prism/internal/database"
	"prism/internal/logger"
	"prism/internal/repository"
	"prism/internal/search"

	"github.com/joho/godotenv"
)

// Rebuilds the Elasticsearch catalog index from the database. Run after
// an index loss or when write-path indexing has been degraded.
func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Overall reindex timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting search reindex")

	if !cfg.Search.Enabled {
		slog.Error("Elasticsearch is disabled, nothing to reindex")
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	searcher, err := search.NewElasticsearchClient(cfg.Search)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", "error", err)
	}

	repos := repository.NewRepositories(db)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := reindex(ctx, repos, searcher); err != nil {
		logger.Fatal("Reindex failed", "error", err)
	}

	slog.Info("Search reindex completed")
}

func reindex(ctx context.Context, repos *repository.Repositories, searcher *search.ElasticsearchClient) error {
	start := time.Now()

	venues, err := repos.Venues.List(ctx)
	if err != nil {
		return err
	}
	for i := range venues {
		if err := searcher.IndexVenue(ctx, &venues[i]); err != nil {
			slog.Error("Failed to index venue", "venue_id", venues[i].ID, "error", err)
			return err
		}
	}

	events, err := repos.Events.List(ctx)
	if err != nil {
		return err
	}
	for i := range events {
		if err := searcher.IndexEvent(ctx, &events[i]); err != nil {
			slog.Error("Failed to index event", "event_id", events[i].ID, "error", err)
			return err
		}
	}

	slog.Info("Reindexed catalog",
		"venues", len(venues),
		"events", len(events),
		"took", time.Since(start))
	return nil
}
