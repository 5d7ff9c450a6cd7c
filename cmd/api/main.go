package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"scentfeed/internal/config"
	"scentfeed/internal/handler"
	"scentfeed/internal/middleware"
	"scentfeed/internal/repository"
	"scentfeed/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (media upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/forgot-password", h.Auth.ForgotPassword)
	auth.Post("/reset-password", h.Auth.ResetPassword)
	auth.Get("/verify-email", h.Auth.VerifyEmail)
	auth.Post("/resend-verification", h.Auth.ResendVerificationEmail)

	// Read endpoints take an optional token so viewer-relative fields
	// (is_liked_by_me, can_edit) come back filled in for signed-in users.
	optional := middleware.AuthOptional(authService)
	required := middleware.AuthRequired(authService)

	posts := v1.Group("/posts")
	posts.Get("/", optional, h.Post.List)
	posts.Get("/:postId", optional, h.Post.GetByID)
	posts.Get("/:postId/comments", optional, h.Comment.ListByPost)
	posts.Post("/", required, h.Post.Create)
	posts.Put("/:postId", required, h.Post.Update)
	posts.Delete("/:postId", required, h.Post.Delete)
	posts.Post("/:postId/like", required, h.Post.Like)
	posts.Delete("/:postId/like", required, h.Post.Unlike)

	comments := v1.Group("/comments")
	comments.Get("/:commentId/replies", optional, h.Comment.ListReplies)
	comments.Post("/", required, h.Comment.Create)
	comments.Put("/:commentId", required, h.Comment.Update)
	comments.Delete("/:commentId", required, h.Comment.Delete)
	comments.Post("/:commentId/like", required, h.Comment.Like)
	comments.Delete("/:commentId/like", required, h.Comment.Unlike)

	users := v1.Group("/users")
	users.Get("/me", required, h.User.GetMe)
	users.Put("/me", required, h.User.UpdateMe)
	users.Get("/:userId", optional, h.User.GetByID)
	users.Get("/:userId/followers", optional, h.Follow.ListFollowers)
	users.Get("/:userId/following", optional, h.Follow.ListFollowing)
	users.Post("/:userId/follow", required, h.Follow.Follow)
	users.Delete("/:userId/follow", required, h.Follow.Unfollow)

	notifications := v1.Group("/notifications", required)
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	media := v1.Group("/media")
	media.Get("/:mediaId", h.Media.GetByID)
	media.Post("/", required, h.Media.Upload)
	media.Delete("/:mediaId", required, h.Media.Delete)
}
