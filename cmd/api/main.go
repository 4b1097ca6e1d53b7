package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/go-resty/resty/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"cidadealerta/internal/adapter/api"
	"cidadealerta/internal/adapter/api/handler"
	apimiddleware "cidadealerta/internal/adapter/api/middleware"
	"cidadealerta/internal/adapter/api/router"
	"cidadealerta/internal/adapter/repository"
	"cidadealerta/internal/domain/service"
	"cidadealerta/internal/infrastructure/firebase"
	"cidadealerta/internal/infrastructure/storage"
	"cidadealerta/internal/infrastructure/websocket"
	"cidadealerta/internal/usecase"
	"cidadealerta/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Service account from environment variable (production) or file path
	// (local development).
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	fbAuth, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis is unreachable, report quota checks degrade: %v", err)
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	issueRepo := repository.NewFirestoreIssueRepository(firestoreClient)

	authClient := firebase.NewAuthClient(fbAuth, cfg.FirebaseApiKey)

	httpClient := resty.New()
	geocodingService := service.NewGeocodingService(httpClient, cfg.NominatimBaseURL)
	categoryService := service.NewCategorySuggestionService(httpClient, cfg.GeminiApiKey, cfg.GeminiModel)

	hub := websocket.NewHub(issueRepo.Listen)
	hub.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, authClient)
	issueUseCase := usecase.NewIssueUseCase(issueRepo, userRepo)
	adminUseCase := usecase.NewAdminUseCase(userRepo, authClient)

	handler.Setup(authUseCase, issueUseCase, adminUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware()
	reportQuota := apimiddleware.NewReportQuotaMiddleware(redisClient, cfg.ReportDailyLimit)

	enrichmentHandler := handler.NewEnrichmentHandler(geocodingService, categoryService)
	wsHandler := handler.NewWebSocketHandler(hub, authClient)
	wsHandler.CleanupRateLimiters()

	router.Setup(e, authMiddleware, adminMiddleware, reportQuota)
	router.SetupEnrichmentRouter(e, enrichmentHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	if cfg.StorageBucket != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opt)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()

		fileHandler := handler.NewFileHandler(storageClient)
		router.SetupFileRouter(e, fileHandler, authMiddleware)
	} else {
		log.Printf("STORAGE_BUCKET not set, photo upload disabled")
	}

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
