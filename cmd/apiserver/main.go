package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	redisDriver "github.com/redis/go-redis/v9"

	"hospohub/internal/config"
	"hospohub/internal/handlers/apiserver"
	appKafka "hospohub/internal/kafka"
	"hospohub/internal/middleware"
	appRedis "hospohub/internal/redis"
	"hospohub/internal/services"
	"hospohub/internal/storage"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Printf("%s %s starting", cfg.AppName, cfg.AppVersion)

	// 2. Database
	db, err := storage.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	if err := storage.AutoMigrateTables(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	// 3. Redis (token blacklist)
	redisClient := redisDriver.NewClient(&redisDriver.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	tokenBlacklist := appRedis.NewRedisTokenBlacklist(redisClient)

	// 4. Repositories
	userRepo := storage.NewGormUserRepository(db)
	connRepo := storage.NewGormConnectionRepository(db)
	notifRepo := storage.NewGormNotificationRepository(db)
	endorsementRepo := storage.NewGormEndorsementRepository(db)
	locationRepo := storage.NewGormLocationRepository(db)
	documentRepo := storage.NewGormDocumentRepository(db)

	// 5. Kafka producer (post-commit connection events)
	kfkProducer, err := appKafka.NewConfluentKafkaProducer(cfg.Kafka)
	if err != nil {
		log.Fatalf("failed to create Kafka producer: %v", err)
	}
	defer kfkProducer.Close()

	// 6. File storage
	storageBaseURL := "/uploads"
	if cfg.Storage.Type != "local" {
		log.Fatalf("unsupported storage type: %s", cfg.Storage.Type)
	}
	storageService, err := storage.NewLocalStorageService(cfg.Storage, storageBaseURL)
	if err != nil {
		log.Fatalf("failed to initialize local storage: %v", err)
	}

	// 7. Services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, locationRepo, storageService)
	connectionService := services.NewConnectionService(db, connRepo, userRepo, kfkProducer, cfg.Kafka)
	notificationService := services.NewNotificationService(notifRepo)
	endorsementService := services.NewEndorsementService(endorsementRepo, userRepo)
	documentService := services.NewDocumentService(documentRepo, storageService)

	// 8. Handlers
	authHandler := apiserver.NewAuthHandler(authService, tokenBlacklist)
	userHandler := apiserver.NewUserHandler(userService, cfg.Storage)
	connectionHandler := apiserver.NewConnectionHandler(connectionService)
	notificationHandler := apiserver.NewNotificationHandler(notificationService)
	endorsementHandler := apiserver.NewEndorsementHandler(endorsementService)
	uploadHandler := apiserver.NewUploadHandler(documentService, cfg.Storage)

	// 9. Routes
	r := mux.NewRouter()

	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	authMW := middleware.AuthMiddleware(cfg.Auth.JWTSecretKey, tokenBlacklist)

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(authMW)

	apiRouter.HandleFunc("/auth/logout", authHandler.LogoutHandler).Methods(http.MethodPost)

	// Profile
	apiRouter.HandleFunc("/users/me", userHandler.GetMyProfileHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/users/me", userHandler.UpdateMyProfileHandler).Methods(http.MethodPut)
	apiRouter.HandleFunc("/users/me/location", userHandler.UpdateLocationHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/users/me/avatar", userHandler.UploadAvatarHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/users/search", userHandler.SearchUsersHandler).Methods(http.MethodGet)

	// Connections (form-encoded intent dispatch)
	apiRouter.HandleFunc("/connections", connectionHandler.ConnectionActionHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/connections", connectionHandler.GetConnectionsHandler).Methods(http.MethodGet)

	// Notifications
	apiRouter.HandleFunc("/notifications", notificationHandler.ListNotificationsHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/notifications/unread-count", notificationHandler.UnreadCountHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/notifications/mark-all-as-read", notificationHandler.MarkAllAsReadHandler).Methods(http.MethodPost)

	// Endorsements
	apiRouter.HandleFunc("/endorsements", endorsementHandler.EndorsementActionHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/users/{userID}/endorsements", endorsementHandler.ListEndorsementsHandler).Methods(http.MethodGet)

	// Documents
	apiRouter.HandleFunc("/documents", uploadHandler.UploadDocumentHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/documents/{documentID}", uploadHandler.DeleteDocumentHandler).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/users/{userID}/documents", uploadHandler.ListDocumentsHandler).Methods(http.MethodGet)

	// Public profile
	r.HandleFunc("/users/{username}", userHandler.GetUserProfileHandler).Methods(http.MethodGet)

	// Static serving for uploaded files
	staticPath := strings.TrimSuffix(storageBaseURL, "/") + "/"
	r.PathPrefix(staticPath).Handler(http.StripPrefix(staticPath, http.FileServer(http.Dir(cfg.Storage.LocalPath))))

	// 10. CORS
	corsOptions := []handlers.CORSOption{
		handlers.AllowedOrigins(cfg.Server.CORS.AllowedOrigins),
		handlers.AllowedMethods(cfg.Server.CORS.AllowedMethods),
		handlers.AllowedHeaders(cfg.Server.CORS.AllowedHeaders),
		handlers.ExposedHeaders(cfg.Server.CORS.ExposedHeaders),
		handlers.MaxAge(cfg.Server.CORS.MaxAge),
	}
	if cfg.Server.CORS.AllowCredentials {
		corsOptions = append(corsOptions, handlers.AllowCredentials())
	}

	// 11. HTTP server with graceful shutdown
	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:           serverAddr,
		Handler:        handlers.CORS(corsOptions...)(r),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Printf("API server listening on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}
