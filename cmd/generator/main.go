package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"prism/internal/config"
	"prism/internal/database"
	"prism/internal/logger"
	"prism/internal/models"
	"prism/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	venueCount    = flag.Int("venues", 5, "Number of venues to generate")
	eventsPer     = flag.Int("events", 4, "Number of events per venue")
	staffEmail    = flag.String("staff-email", "", "Create a staff account with this email")
	staffPassword = flag.String("staff-password", "changeme", "Password for the staff account")
	dryRun        = flag.Bool("dry-run", false, "Show what would be generated without making changes")
)

var venueNames = []string{
	"Grand Hall", "Riverside Arena", "Summit Pavilion", "Harbor Stage",
	"Old Town Theatre", "Aurora Center", "Meadow Grounds", "Skyline Loft",
}

var locations = []string{
	"Kuantan", "Pekan", "Temerloh", "Bentong", "Raub", "Jerantut", "Rompin",
}

var eventNames = []string{
	"Jazz Night", "Food Festival", "Craft Fair", "Open Mic", "Film Screening",
	"Tech Meetup", "Charity Run", "Art Exhibition", "Book Launch", "Night Market",
}

type seeder struct {
	repos *repository.Repositories
	rng   *rand.Rand
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting seed generator...")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	s := &seeder{
		repos: repository.NewRepositories(db),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	ctx := context.Background()

	if *staffEmail != "" {
		if err := s.createStaff(ctx, *staffEmail, *staffPassword); err != nil {
			slog.Error("Failed to create staff account", "error", err)
			os.Exit(1)
		}
	}

	if err := s.generate(ctx); err != nil {
		slog.Error("Failed to generate seed data", "error", err)
		os.Exit(1)
	}

	slog.Info("Seed generation completed")
}

func (s *seeder) createStaff(ctx context.Context, email, password string) error {
	if *dryRun {
		slog.Info("[DRY RUN] Would create staff account", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		FullName:     "Site Admin",
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      true,
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return err
	}

	slog.Info("Created staff account", "email", email, "user_id", user.ID)
	return nil
}

func (s *seeder) generate(ctx context.Context) error {
	existing, err := s.repos.Venues.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list venues: %w", err)
	}
	offset := len(existing)

	for i := 0; i < *venueCount; i++ {
		venueID := fmt.Sprintf("V%d", offset+i+1)
		name := venueNames[s.rng.Intn(len(venueNames))]
		location := locations[s.rng.Intn(len(locations))]

		if *dryRun {
			slog.Info("[DRY RUN] Would create venue", "venue_id", venueID, "name", name)
			continue
		}

		venue := &models.Venue{
			ID:        venueID,
			Name:      name,
			Location:  location,
			ImagePath: models.DefaultVenueImage,
		}
		if err := s.repos.Venues.Create(ctx, venue); err != nil {
			slog.Error("Failed to create venue", "venue_id", venueID, "error", err)
			continue
		}

		for j := 0; j < *eventsPer; j++ {
			event := &models.Event{
				Name:    eventNames[s.rng.Intn(len(eventNames))],
				Date:    s.randomDate(),
				VenueID: venueID,
			}
			if err := s.repos.Events.Create(ctx, event); err != nil {
				slog.Error("Failed to create event", "venue_id", venueID, "error", err)
				continue
			}
		}

		slog.Info("Created venue with events", "venue_id", venueID, "events", *eventsPer)
	}

	return nil
}

// randomDate lands within the next half year.
func (s *seeder) randomDate() time.Time {
	days := s.rng.Intn(180) + 1
	return time.Now().AddDate(0, 0, days).Truncate(24 * time.Hour)
}
