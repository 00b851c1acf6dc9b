package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/job_board/internal/config"
	"github.com/Skotchmaster/job_board/internal/db"
	"github.com/Skotchmaster/job_board/internal/es"
	"github.com/Skotchmaster/job_board/internal/handlers"
	"github.com/Skotchmaster/job_board/internal/logging"
	authmw "github.com/Skotchmaster/job_board/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/job_board/internal/middleware/logging"
	"github.com/Skotchmaster/job_board/internal/mykafka"
	"github.com/Skotchmaster/job_board/internal/service"
	httpserver "github.com/Skotchmaster/job_board/internal/transport/http"
)

func main() {
	cfg := config.Load()
	cfg.MustValidate()

	logger := logging.New(cfg.LogLevel)

	gdb, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	}

	tokenSvc := &service.TokenService{
		DB:                 gdb,
		JWTSecret:          cfg.JWTSecret,
		RefreshSecret:      cfg.RefreshSecret,
		RevokePriorOnLogin: cfg.RevokePriorOnLogin,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Auth:            authmw.New(cfg.JWTSecret),
		AuthHandler:     &handlers.AuthHandler{DB: gdb, Tokens: tokenSvc, Producer: producer},
		UserHandler:     &handlers.UserHandler{DB: gdb},
		CategoryHandler: &handlers.CategoryHandler{DB: gdb},
		JobHandler:      &handlers.JobHandler{DB: gdb, Producer: producer, ES: esClient, Index: cfg.ESIndex},
		CommentHandler:  &handlers.CommentHandler{DB: gdb, Producer: producer},
		SearchHandler:   &handlers.SearchHandler{ES: esClient, Index: cfg.ESIndex},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
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

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
