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

	"keeper/config"
	"keeper/handler"
	"keeper/middleware"
	"keeper/repository"
	"keeper/services"
	"keeper/usecase"
	"keeper/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"REDIS_URL",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
}

func setupRouter(notesService *usecase.NotesService, labelsService *usecase.LabelsService,
	userRepo *repository.UserRepo, health *handler.HealthHandler) *gin.Engine {

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())

	notesHandler := handler.NewNotesHandler(notesService)
	labelsHandler := handler.NewLabelsHandler(labelsService)
	authHandler := handler.NewAuthHandler(userRepo)
	usersHandler := handler.NewUsersHandler(userRepo)

	router.GET("/health", health.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		users := protected.Group("/users")
		{
			users.GET("", usersHandler.GetAllUsers)
			users.GET("/:id", usersHandler.GetUser)
			users.PUT("/:id", usersHandler.UpdateUser)
			users.DELETE("/:id", usersHandler.DeleteUser)
		}

		notes := protected.Group("/notes")
		{
			notes.POST("", notesHandler.CreateNote)
			notes.GET("", notesHandler.ListNotes)
			notes.GET("/archived", notesHandler.ListArchived)
			notes.GET("/trash", notesHandler.ListTrash)
			notes.GET("/pinned", notesHandler.ListPinned)
			notes.GET("/shared", notesHandler.ListShared)
			notes.GET("/search", notesHandler.SearchNotes)

			notes.PUT("/:id", notesHandler.UpdateNote)
			notes.PUT("/:id/labels", notesHandler.UpdateLabels)
			notes.PUT("/:id/pin", notesHandler.TogglePin)
			notes.PUT("/:id/archive", notesHandler.ToggleArchive)
			notes.PUT("/:id/trash", notesHandler.MoveToTrash)
			notes.PUT("/:id/restore", notesHandler.RestoreFromTrash)
			notes.DELETE("/:id/permanent", notesHandler.PermanentDelete)

			notes.POST("/:id/collaborators", notesHandler.AddCollaborator)
			notes.DELETE("/:id/collaborators/:collaboratorId", notesHandler.RemoveCollaborator)
		}

		labels := protected.Group("/labels")
		{
			labels.GET("", labelsHandler.ListLabels)
			labels.POST("", labelsHandler.CreateLabel)
			labels.PUT("/rename", labelsHandler.RenameLabel)
			labels.DELETE("/:name", labelsHandler.DeleteLabel)
		}
	}

	return router
}

func main() {
	ctx := context.Background()

	dbConfig := config.LoadDatabaseConfig()
	mongoClient, err := utils.ConnectMongo(ctx, dbConfig.URI,
		dbConfig.MaxPoolSize, dbConfig.MinPoolSize, dbConfig.MaxConnIdleTime)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := repository.SetupIndexes(mongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	cacheConfig := config.LoadCacheConfig()
	viewCache, err := services.NewRedisViewCache(cacheConfig.RedisURL, cacheConfig.ViewTTLs)
	if err != nil {
		log.Fatalf("Invalid cache configuration: %v", err)
	}

	notesRepo := repository.GetNotesRepo(mongoClient)
	userRepo := repository.GetUserRepo(mongoClient)

	notesService := &usecase.NotesService{
		Store:    notesRepo,
		Cache:    viewCache,
		Users:    userRepo,
		Notifier: services.LogNotifier{},
	}
	labelsService := &usecase.LabelsService{
		Users: userRepo,
		Notes: notesRepo,
		Cache: viewCache,
	}
	health := handler.NewHealthHandler(mongoClient, viewCache)

	router := setupRouter(notesService, labelsService, userRepo, health)

	port := utils.GetEnvAsString("PORT", "8080")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// The process entry point owns the lifecycle of both backends:
	// stop accepting requests, then close cache and store.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Caught signal %s, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := viewCache.Close(); err != nil {
		log.Printf("Cache close error: %v", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	log.Println("Server shutdown complete")
}
