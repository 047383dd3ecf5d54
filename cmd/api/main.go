package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"financial-hub/internal/ai"
	"financial-hub/internal/config"
	"financial-hub/internal/conversation"
	"financial-hub/internal/email"
	"financial-hub/internal/executor"
	"financial-hub/internal/handler"
	"financial-hub/internal/interpreter"
	"financial-hub/internal/llm"
	"financial-hub/internal/reminder"
	"financial-hub/internal/repository"
	"financial-hub/internal/service"
	"financial-hub/internal/session"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env if present; real environment variables take precedence
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Session store: Redis when configured, in-memory otherwise
	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	var sessions session.Store
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisStore, err := session.NewRedisStore(ctx, cfg.RedisURL, ttl)
		cancel()
		if err != nil {
			logger.Warnf("Redis unavailable, continuing with in-memory sessions: %v", err)
		} else {
			sessions = redisStore
			logger.Info("Using Redis session store")
		}
	}
	if sessions == nil {
		memStore := session.NewMemoryStore(ttl)
		go func() {
			for range time.Tick(ttl) {
				memStore.Sweep()
			}
		}()
		sessions = memStore
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger)
	client := llm.NewAnthropicClient(cfg, logger)
	aiSvc := ai.NewService(client, logger)
	interp := interpreter.NewInterpreter(client, logger)
	exec := executor.NewExecutor(repo, logger, cfg.StrictValidation)
	manager := conversation.NewManager(interp, exec, aiSvc, sessions, repo, logger)
	h := handler.NewHandler(svc, aiSvc, manager, interp, exec, logger)

	// Bill reminder job
	if cfg.ReminderEnabled && cfg.SMTPHost != "" {
		sender := email.NewSender(cfg, logger)
		scheduler := reminder.NewScheduler(cfg, repo, sender, logger)
		if err := scheduler.Start(); err != nil {
			logger.Fatalf("Failed to start reminder scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	h.Routes(r)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: r,
		// Generous write timeout: analysis endpoints wait on the model.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
