// Package server wires repositories, services and handlers into one gin engine.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"servic/internal/config"
	"servic/internal/middleware"
	"servic/internal/modules/admin"
	"servic/internal/modules/auth"
	"servic/internal/modules/availability"
	"servic/internal/modules/booking"
	"servic/internal/modules/lead"
	"servic/internal/modules/notification"
	"servic/internal/modules/provider"
	"servic/internal/modules/reminder"
	"servic/internal/pkg/events"
	"servic/internal/pkg/jwt"
	"servic/internal/pkg/mailer"
	"servic/internal/pkg/response"
	"servic/internal/repository"
)

// Options are the process-wide dependencies. Redis, Events and Mail may be nil.
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	Log    logrus.FieldLogger
	Redis  *redis.Client
	Events events.Publisher
	Mail   mailer.Sender
}

type Server struct {
	Router   *gin.Engine
	Hub      *notification.Hub
	Notifier *notification.Notifier
	Reminder *reminder.Job
}

func New(opts Options) *Server {
	cfg, log := opts.Config, opts.Log

	users := repository.NewUserRepository(opts.DB)
	providers := repository.NewProviderRepository(opts.DB)
	bookings := repository.NewBookingRepository(opts.DB)
	leads := repository.NewLeadRepository(opts.DB)

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notification.NewHub(log)
	notifier := notification.NewNotifier(hub, opts.Mail, users, log)

	authService := auth.NewService(users, tokens)
	authHandler := auth.NewHandler(authService,
		auth.NewSessionCookie(cfg.CookieName, cfg.CookieSecure, cfg.CookieSameSite, tokens.TTL()), log)

	providerHandler := provider.NewHandler(provider.NewService(providers), authHandler, log)
	availabilityHandler := availability.NewHandler(availability.NewService(providers, bookings, cfg.Location), log)
	bookingHandler := booking.NewHandler(
		booking.NewService(bookings, providers, users, notifier, opts.Events, log, cfg.Location), log)
	leadHandler := lead.NewHandler(lead.NewService(leads, providers, opts.Events, log), log)
	adminHandler := admin.NewHandler(
		admin.NewService(providers, repository.NewStatsRepository(opts.DB), hub, log), log)
	socketHandler := notification.NewHandler(hub, tokens, cfg.CORSAllowedOrigins, log)

	limited := middleware.RateLimit(opts.Redis, cfg.RateLimitPerMinute, time.Minute, middleware.KeyByIPAndPath(), log)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorLogger(log), middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := opts.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "online": hub.OnlineCount()})
	})
	socketHandler.RegisterRoutes(r)

	api := r.Group("/api", middleware.Session(tokens, cfg.CookieName))
	{
		authHandler.RegisterRoutes(api, limited)
		providerHandler.RegisterRoutes(api)
		availabilityHandler.RegisterRoutes(api)
		bookingHandler.RegisterRoutes(api)
		leadHandler.RegisterRoutes(api, limited)
		adminHandler.RegisterRoutes(api)
	}

	return &Server{
		Router:   r,
		Hub:      hub,
		Notifier: notifier,
		Reminder: reminder.NewJob(bookings, providers, notifier, cfg.ReminderLead, cfg.Location, log),
	}
}
