package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cumarfaruur/safari-pos-backend/internal/auth"
	"github.com/cumarfaruur/safari-pos-backend/internal/config"
	"github.com/cumarfaruur/safari-pos-backend/internal/db"
	"github.com/cumarfaruur/safari-pos-backend/internal/handlers"
	"github.com/cumarfaruur/safari-pos-backend/internal/metrics"
	"github.com/cumarfaruur/safari-pos-backend/internal/middleware"
	"github.com/cumarfaruur/safari-pos-backend/internal/services"
	"github.com/cumarfaruur/safari-pos-backend/internal/validation"
	"github.com/cumarfaruur/safari-pos-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.Init(cfg.Server.Env, cfg.Log.Level)
	log := logger.Get()
	defer log.Sync()

	if cfg.JWT.Secret == "" {
		log.Fatal("TOKEN_SECRET environment variable not set")
	}

	metrics.Init(cfg.Metrics.Prefix)

	// Connect to MongoDB
	client, err := db.Connect(context.Background(), cfg.Mongo.URI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Disconnect(ctx, client); err != nil {
			log.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	log.Info("Successfully connected to MongoDB")

	database := client.Database(cfg.Mongo.Database)

	// Initialize services and handlers
	validate := validation.New()
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiration)

	waiterService := services.NewAccountService(database, "waiter")
	userService := services.NewAccountService(database, "user")
	transactionService := services.NewTransactionService(database)
	receptionService := services.NewReceptionService(database)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelIndex()
	for _, svc := range []*services.AccountService{waiterService, userService} {
		if err := svc.EnsureIndexes(indexCtx); err != nil {
			log.Fatal("Failed to create account indexes", zap.Error(err))
		}
	}

	waiterHandler := handlers.NewAccountHandler(waiterService, "Waiter", validate, tokens, cfg.IsProduction(), log)
	userHandler := handlers.NewAccountHandler(userService, "User", validate, tokens, cfg.IsProduction(), log)
	transactionHandler := handlers.NewTransactionHandler(transactionService, validate, log)
	receptionHandler := handlers.NewReceptionHandler(receptionService, validate, log)

	// Set up router
	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(log))
	router.Use(middleware.Metrics)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Hello From The server!"}`))
	}).Methods("GET", "HEAD")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/api/waiter/signup", waiterHandler.Signup).Methods("POST")
	router.HandleFunc("/api/waiter/login", waiterHandler.Login).Methods("POST")
	router.HandleFunc("/api/waiter/logout", waiterHandler.Logout).Methods("POST")
	router.HandleFunc("/api/waiter/all-waiters", waiterHandler.List).Methods("GET")
	router.HandleFunc("/api/waiter/update-waiter/{id}", waiterHandler.Update).Methods("PUT")
	router.HandleFunc("/api/waiter/delete-waiter/{id}", waiterHandler.Delete).Methods("DELETE")

	router.HandleFunc("/api/user/signup", userHandler.Signup).Methods("POST")
	router.HandleFunc("/api/user/login", userHandler.Login).Methods("POST")
	router.HandleFunc("/api/user/logout", userHandler.Logout).Methods("POST")
	router.HandleFunc("/api/user/all-users", userHandler.List).Methods("GET")
	router.HandleFunc("/api/user/update-user/{id}", userHandler.Update).Methods("PUT")
	router.HandleFunc("/api/user/delete-user/{id}", userHandler.Delete).Methods("DELETE")

	router.HandleFunc("/api/transaction/create-transaction", transactionHandler.Create).Methods("POST")
	router.HandleFunc("/api/transaction/all-transactions", transactionHandler.List).Methods("GET")
	router.HandleFunc("/api/transaction/update-transaction/{id}", transactionHandler.Update).Methods("PUT")
	router.HandleFunc("/api/transaction/delete-transaction/{id}", transactionHandler.Delete).Methods("DELETE")

	router.HandleFunc("/api/reception/create-reception", receptionHandler.Create).Methods("POST")

	// Start server
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	log.Info("Server running", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
