package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Nevskiy911/contacts-api/internal/avatar"
	"github.com/Nevskiy911/contacts-api/internal/config"
	"github.com/Nevskiy911/contacts-api/internal/es"
	"github.com/Nevskiy911/contacts-api/internal/handlers"
	"github.com/Nevskiy911/contacts-api/internal/logging"
	"github.com/Nevskiy911/contacts-api/internal/mailer"
	authmw "github.com/Nevskiy911/contacts-api/internal/middleware/auth"
	"github.com/Nevskiy911/contacts-api/internal/repo"
	"github.com/Nevskiy911/contacts-api/internal/service"
	"github.com/Nevskiy911/contacts-api/internal/service/search"
	"github.com/Nevskiy911/contacts-api/internal/tokens"
	httpserver "github.com/Nevskiy911/contacts-api/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	tokenSvc := &tokens.Service{Secret: cfg.JWTSecret}

	var sender service.ConfirmationSender
	var mail *mailer.Mailer
	if len(cfg.KafkaBrokers) > 0 {
		mail = mailer.New(cfg.KafkaBrokers, cfg.EmailTopic, logger)
		sender = mail
	} else {
		logger.Warn("KAFKA_ADDRESS is empty, confirmation emails are disabled")
	}

	var index service.ContactIndex
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		index = search.NewESIndex(esClient, cfg.ESIndex)
	} else {
		logger.Warn("ES_URL is empty, contact search is disabled")
	}

	authSvc := &service.AuthService{
		Repo:            gormRepo,
		Tokens:          tokenSvc,
		Mailer:          sender,
		Avatars:         avatar.NewClient(),
		BaseURL:         cfg.BaseURL,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		VerifyTokenTTL:  cfg.VerifyTokenTTL,
	}
	contactSvc := &service.ContactService{Repo: gormRepo, Index: index}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := logging.IntoContext(req.Context(), logger)
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Svc: authSvc},
		ContactHandler: &handlers.ContactHandler{Svc: contactSvc},
		AuthMW:         &authmw.Middleware{Repo: gormRepo, Tokens: tokenSvc},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if mail != nil {
		if err := mail.Close(); err != nil {
			log.Printf("mailer close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
