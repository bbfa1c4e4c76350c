package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hamrazafsal1998/SkillTrackr/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	uploadDir        = "uploads"
	publicPortfolios = true
)

// Configure wires handler-level settings from the loaded config.
func Configure(cfg *config.Config) {
	uploadDir = cfg.UploadDir
	publicPortfolios = cfg.PublicPortfolios
}

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// storeImage validates and persists the uploaded file under the given
// form field, returning its public URL path. A missing file is not an
// error — images are optional. On failure it returns a status and
// message for the handler to surface; nothing is written in that case.
func storeImage(c *fiber.Ctx, field string) (string, int, string) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", 0, ""
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", fiber.StatusBadRequest, "Only jpg, png, and webp images are allowed"
	}

	// Limit to 5MB
	if file.Size > 5*1024*1024 {
		return "", fiber.StatusBadRequest, "Image must be under 5MB"
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fiber.StatusInternalServerError, "Failed to create uploads directory"
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := c.SaveFile(file, filepath.Join(uploadDir, filename)); err != nil {
		return "", fiber.StatusInternalServerError, "Failed to save image"
	}

	return "/uploads/" + filename, 0, ""
}

// removeImageFile deletes a previously stored image by its URL path.
// Best effort: a file already gone is not a problem.
func removeImageFile(urlPath string) {
	if urlPath == "" {
		return
	}
	os.Remove(filepath.Join(uploadDir, filepath.Base(urlPath)))
}

// UploadImage stores a standalone image (used for avatars) and returns
// its URL.
func UploadImage(c *fiber.Ctx) error {
	if _, err := c.FormFile("image"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image file provided",
		})
	}

	url, status, msg := storeImage(c, "image")
	if status != 0 {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{"url": url})
}
