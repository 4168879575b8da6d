package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"servic/internal/config"
	"servic/internal/database"
	"servic/internal/pkg/events"
	"servic/internal/pkg/logger"
	"servic/internal/pkg/mailer"
	"servic/internal/repository"
	"servic/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("servic-api", os.Getenv("APP_ENV")).WithError(err).Fatal("invalid configuration")
	}
	log := logger.New("servic-api", cfg.AppEnv)
	if !cfg.IsProd() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}
	if err := repository.Migrate(db); err != nil {
		log.WithError(err).Fatal("migrate database")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, rate limiting fails open")
		}
		cancel()
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitMQURL != "" {
		rp, err := events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, events are dropped")
		} else {
			defer rp.Close()
			publisher = rp
		}
	}

	var mail mailer.Sender = mailer.Nop{}
	if cfg.MailEnabled() {
		mail = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	}

	srv := server.New(server.Options{
		Config: cfg,
		DB:     db,
		Log:    log,
		Redis:  rdb,
		Events: publisher,
		Mail:   mail,
	})

	scheduler, err := srv.Reminder.Schedule(cfg.ReminderSchedule)
	if err != nil {
		log.WithError(err).Fatal("schedule reminders")
	}
	scheduler.Start()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Hub.Close()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http server shutdown")
	}
	srv.Notifier.Wait()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}
