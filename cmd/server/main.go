package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	config "github.com/maheshrc27/creatorflow/configs"
	"github.com/maheshrc27/creatorflow/internal/api/handlers"
	"github.com/maheshrc27/creatorflow/internal/api/middleware"
	"github.com/maheshrc27/creatorflow/internal/jobs"
	"github.com/maheshrc27/creatorflow/internal/queue"
	"github.com/maheshrc27/creatorflow/internal/service"
	"github.com/maheshrc27/creatorflow/internal/storage"
	"github.com/maheshrc27/creatorflow/internal/workspace"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	ctx := context.Background()

	kv, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open state database: %v", err)
	}
	defer closeKV(kv)

	genaiService := service.NewGenAIService(*cfg)
	videoService := service.NewVideoService(*cfg)
	assetService := service.NewAssetService(*cfg)
	downloadService := service.NewDownloadService(*cfg, assetService)
	apiKeyService := service.NewApiKeyService(ctx, kv, cfg.SecretKey)

	ws := workspace.New(ctx, kv, genaiService, videoService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg)
	app.Post("/login", auth.Login)
	app.Post("/logout", auth.Logout)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	post := handlers.NewPostHandler(ws)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/create", post.CreatePost)
	api.Post("/posts/:id/select", post.SelectPost)
	api.Post("/posts/:id/content", post.UpdateContent)
	api.Post("/posts/:id/clone", post.ClonePost)
	api.Post("/posts/:id/draft", post.SaveDraft)
	api.Post("/posts/:id/publish", post.PublishPost)
	api.Delete("/posts/:id", post.DeletePost)
	api.Get("/drafts", post.ListDrafts)
	api.Post("/drafts/:id/edit", post.EditDraft)
	api.Post("/drafts/:id/publish", post.PublishDraft)
	api.Delete("/drafts/:id", post.DeleteDraft)
	api.Get("/published", post.ListPublished)
	api.Get("/failed", post.ListFailed)
	api.Post("/failed/:id/retry", post.RetryFailed)

	calendar := handlers.NewCalendarHandler(ws)
	api.Get("/calendar", calendar.ListEvents)
	api.Post("/calendar/events", calendar.AddEvent)
	api.Post("/calendar/events/update", calendar.UpdateEvent)
	api.Post("/calendar/events/remove", calendar.DeleteEvent)
	api.Post("/calendar/schedule", calendar.SchedulePost)
	api.Post("/calendar/events/fail", calendar.MarkFailed)
	api.Post("/calendar/clear", calendar.ClearEvents)

	source := handlers.NewSourceHandler(ws)
	api.Get("/sources", source.ListSources)
	api.Post("/sources", source.AddSource)
	api.Delete("/sources/:id", source.DeleteSource)

	chat := handlers.NewChatHandler(ws)
	api.Get("/chat", chat.Transcript)
	api.Post("/chat/submit", chat.Submit)
	api.Post("/chat/generate", chat.Generate)

	media := handlers.NewMediaHandler(ws, assetService)
	api.Get("/media", media.ListMedia)
	api.Get("/media/:id/raw", media.ServeMedia)
	api.Post("/media/:id/export", media.ExportMedia)
	api.Delete("/media/:id", media.RemoveMedia)
	api.Post("/media/image", media.GenerateImage)
	api.Post("/media/video", media.GenerateVideo)

	download := handlers.NewDownloadHandler(downloadService)
	api.Post("/download/video", download.FetchVideo)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService, ws)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Get("/api_key/stats", apiKeys.KeyStats)
	api.Post("/api_key/:id/regenerate", apiKeys.RegenerateKey)
	api.Delete("/api_key/:id", apiKeys.RemoveAPIKey)
	api.Get("/projects", apiKeys.ListVideoProjects)
	api.Post("/projects", apiKeys.CreateVideoProject)
	api.Delete("/projects/:id", apiKeys.DeleteVideoProject)

	// cron jobs
	maintenance := jobs.NewMaintenanceJob(ws)
	c := cron.New()
	c.AddFunc("@every 01h00m00s", maintenance.Run)
	c.Start()

	// Deferred publishing runs only when Redis is configured.
	if cfg.RedisURI != "" {
		redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
		client := asynq.NewClient(redisConn)
		defer client.Close()
		ws.SetScheduler(queue.NewPublisher(client))

		go func() {
			server := asynq.NewServer(redisConn, asynq.Config{
				Concurrency: 10,
			})

			mux := asynq.NewServeMux()
			worker := queue.NewWorker(ws)
			mux.HandleFunc(queue.TaskTypePublishEvent, worker.HandlePublishEventTask)

			log.Println("Starting the Asynq server...")
			if err := server.Run(mux); err != nil {
				log.Fatalf("Could not start Asynq server: %v", err)
			}
		}()
	}

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, ws, kv)
}

func closeKV(kv *storage.Store) {
	fmt.Fprint(os.Stdout, "Closing state database... ")
	if err := kv.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, ws *workspace.Store, kv *storage.Store) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	ws.PersistAll(context.Background())
	ws.EndSession()
	closeKV(kv)
	log.Println("Server shutdown complete.")
}
