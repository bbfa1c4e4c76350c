package routes

import (
	"github.com/hamrazafsal1998/SkillTrackr/internal/handlers"
	"github.com/hamrazafsal1998/SkillTrackr/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", handlers.Signup)
	auth.Post("/register", handlers.Signup) // alias
	auth.Post("/login", handlers.Login)
	auth.Get("/profile", middleware.Protected(), handlers.GetProfile)
	auth.Get("/me", middleware.Protected(), handlers.GetProfile)
	auth.Put("/profile", middleware.Protected(), handlers.UpdateProfile)

	// Public portfolio — registered ahead of the protected group so it
	// stays reachable without a token
	api.Get("/public/:username/:skillName", handlers.GetPublicPortfolio)

	protected := api.Group("/", middleware.Protected())

	skills := protected.Group("/skills")
	skills.Get("/", handlers.GetSkills)
	skills.Post("/", handlers.CreateSkill)
	skills.Get("/:id", handlers.GetSkill)
	skills.Put("/:id", handlers.UpdateSkill)
	skills.Delete("/:id", handlers.DeleteSkill)

	progress := protected.Group("/progress")
	progress.Get("/:skillId", handlers.GetProgress)
	progress.Post("/:skillId", handlers.CreateProgress)
	progress.Put("/:id", handlers.UpdateProgress)
	progress.Delete("/:id", handlers.DeleteProgress)

	// File upload (avatars)
	protected.Post("/upload", handlers.UploadImage)
}
