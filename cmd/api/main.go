package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/4rnv/safebalance/internal/config"
	"github.com/4rnv/safebalance/internal/handler"
	"github.com/4rnv/safebalance/internal/middleware"
	"github.com/4rnv/safebalance/internal/ml"
	"github.com/4rnv/safebalance/internal/repository"
	"github.com/4rnv/safebalance/internal/scheduler"
	"github.com/4rnv/safebalance/internal/service"
	"github.com/4rnv/safebalance/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Load the trained model artifact; the service degrades to fallback
	// forecasts when it is missing
	artifact, err := ml.LoadArtifact(cfg.ModelPath, cfg.EncoderPath, cfg.ConfigPath)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"event": "model load failed",
			"error": err.Error(),
		}).Warn("Continuing with fallback forecasts")
		artifact = nil
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	forecaster := ml.NewForecaster(artifact, repo, repo, repo, logger)
	var mailer service.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, forecaster, mailer, cfg, logger)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/", h.Health).Methods("GET")
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/users/{user_id}", h.GetUser).Methods("GET")
	authRouter.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	authRouter.HandleFunc("/accounts/user/{user_id}", h.GetAccountByUser).Methods("GET")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions/account/{acct_id}", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions/statement", h.ImportStatement).Methods("POST")
	authRouter.HandleFunc("/scheduled_payments", h.CreateScheduledPayment).Methods("POST")
	authRouter.HandleFunc("/scheduled_payments/user/{user_id}", h.ListScheduledPayments).Methods("GET")
	authRouter.HandleFunc("/scheduled_payments/{id}", h.DeleteScheduledPayment).Methods("DELETE")
	authRouter.HandleFunc("/questionnaires", h.CreateQuestionnaire).Methods("POST")
	authRouter.HandleFunc("/questionnaires/user/{user_id}", h.GetQuestionnaireByUser).Methods("GET")
	authRouter.HandleFunc("/insights/user/{user_id}", h.ListInsights).Methods("GET")
	authRouter.HandleFunc("/insights/{insight_id}/read", h.MarkInsightRead).Methods("PUT")
	authRouter.HandleFunc("/predictions/risk/{user_id}", h.PredictRisk).Methods("GET")
	authRouter.HandleFunc("/predictions/income/{user_id}", h.PredictIncome).Methods("GET")
	authRouter.HandleFunc("/buffer/{user_id}", h.GetBuffer).Methods("GET")
	authRouter.HandleFunc("/buffer/{user_id}/refresh", h.RefreshBuffer).Methods("POST")

	// Start the agent sweeps
	sched := scheduler.NewScheduler(svc, logger)
	if err := sched.Start(cfg); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
