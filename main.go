package main

import (
	"log"

	"github.com/hamrazafsal1998/SkillTrackr/internal/config"
	"github.com/hamrazafsal1998/SkillTrackr/internal/database"
	"github.com/hamrazafsal1998/SkillTrackr/internal/handlers"
	"github.com/hamrazafsal1998/SkillTrackr/internal/middleware"
	"github.com/hamrazafsal1998/SkillTrackr/internal/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	cfg := config.Load()
	middleware.SetJWTSecret(cfg.JWTSecret)
	handlers.Configure(cfg)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // multipart progress entries carry images
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Uploaded images are served straight from disk, on both paths the
	// clients use
	app.Static("/uploads", cfg.UploadDir)
	app.Static("/api/uploads", cfg.UploadDir)

	routes.Setup(app)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
