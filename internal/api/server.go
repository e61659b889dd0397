package api

import (
	"fmt"
	"net/http"

	"prism/internal/cache"
	"prism/internal/config"
	"prism/internal/database"
	"prism/internal/handlers"
	"prism/internal/logger"
	"prism/internal/messaging"
	"prism/internal/metrics"
	"prism/internal/middleware"
	"prism/internal/repository"
	"prism/internal/search"
	"prism/internal/service"
	"prism/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	cache    *cache.Client
	services *service.Services
	repos    *repository.Repositories
}

// NewServer wires the whole application: database, migrations, NATS,
// Redis, Elasticsearch, repositories, services, routes.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	var cacheClient *cache.Client
	if cfg.Cache.Enabled {
		cacheClient, err = cache.NewClient(cfg.Cache)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
	}

	var searcher *search.ElasticsearchClient
	if cfg.Search.Enabled {
		searcher, err = search.NewElasticsearchClient(cfg.Search)
		if err != nil {
			logger.Fatal("Failed to connect to Elasticsearch", "error", err)
		}
	}

	images, err := storage.NewImageStore(cfg.MediaRoot)
	if err != nil {
		logger.Fatal("Failed to initialize media storage", "error", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(service.NewStores(repos), natsClient, searcher)

	metrics.Register()

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(middleware.Sessions(cfg.SessionSecret))

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		cache:    cacheClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes(images)

	return server
}

func (s *Server) setupRoutes(images *storage.ImageStore) {
	h := handlers.NewHandlers(s.services, s.cache, images)

	// Public pages
	s.router.GET("/", h.Index)
	s.router.GET("/register", h.RegisterPage)
	s.router.POST("/register", h.Register)
	s.router.GET("/login", h.LoginPage)
	s.router.POST("/login", h.Login)
	s.router.GET("/events", h.ListEvents)
	s.router.GET("/venues", h.ListVenues)
	s.router.GET("/search", h.Search)
	s.router.GET("/search-item", h.SearchItem)
	s.router.GET("/about", h.About)

	// Logged-in users
	user := s.router.Group("/")
	user.Use(middleware.RequireUser())
	{
		user.POST("/logout", h.Logout)
		user.GET("/starred", h.StarredList)
		user.POST("/star-item/:contentType/:objectID", h.StarItem)
		user.POST("/book-event/:eventID", h.BookEvent)
		user.POST("/cancel-booking/:bookingID", h.CancelBooking)
		user.GET("/booked", h.BookedEvents)
		user.GET("/dashboard", h.Dashboard)
		user.POST("/update-profile", h.UpdateProfile)
	}

	// Staff
	staff := s.router.Group("/")
	staff.Use(middleware.RequireStaff())
	{
		staff.GET("/admin-dashboard", h.AdminDashboard)
		staff.POST("/admin-dashboard", h.AdminDashboardSubmit)
		staff.GET("/database-management", h.DatabaseManagement)

		staff.POST("/user/edit/:userID", h.EditUser)
		staff.POST("/user/delete/:userID", h.DeleteUser)
		staff.POST("/venue/edit/:venueID", h.EditVenue)
		staff.POST("/venue/delete/:venueID", h.DeleteVenue)
		staff.POST("/event/edit/:eventID", h.EditEvent)
		staff.POST("/event/delete/:eventID", h.DeleteEvent)
		staff.POST("/booking/edit/:bookingID", h.EditBooking)
		staff.POST("/booking/delete/:bookingID", h.DeleteBooking)
	}

	// Uploaded venue images
	s.router.Static("/media", s.config.MediaRoot)

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	health := s.db.HealthCheck(c.Request.Context())
	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   health.Status,
		"service":  "prism-api",
		"database": health,
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the outbound connections.
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			logger.Get().Error("Error closing Redis connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
