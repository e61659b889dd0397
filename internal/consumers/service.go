package consumers

import (
	"context"

	"prism/internal/config"
	"prism/internal/database"
	"prism/internal/logger"
	"prism/internal/messaging"
	"prism/internal/models"
	"prism/internal/repository"
	"prism/internal/search"
)

// ConsumerService runs the background side of the domain events: search
// index upkeep and audit logging, decoupled from the request path.
type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	var searcher *search.ElasticsearchClient
	if cfg.Search.Enabled {
		searcher, err = search.NewElasticsearchClient(cfg.Search)
		if err != nil {
			return nil, err
		}
	}

	repos := repository.NewRepositories(db)
	handlers := NewHandlers(repos, searcher)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	logger.Get().Info("Starting NATS consumers...")

	subjects := map[string]func() error{
		models.EventBookingCreated: func() error {
			_, err := cs.nats.SubscribeQueue(models.EventBookingCreated, "consumers", cs.handlers.HandleBookingCreated)
			return err
		},
		models.EventBookingCancelled: func() error {
			_, err := cs.nats.SubscribeQueue(models.EventBookingCancelled, "consumers", cs.handlers.HandleBookingCancelled)
			return err
		},
		models.EventEventCreated: func() error {
			_, err := cs.nats.SubscribeQueue(models.EventEventCreated, "consumers", cs.handlers.HandleEventCreated)
			return err
		},
		models.EventStarToggled: func() error {
			_, err := cs.nats.SubscribeQueue(models.EventStarToggled, "consumers", cs.handlers.HandleStarToggled)
			return err
		},
	}

	for subject, subscribe := range subjects {
		if err := subscribe(); err != nil {
			logger.Get().Error("Failed to subscribe", "subject", subject, "error", err)
			return err
		}
	}

	logger.Get().Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	logger.Get().Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
