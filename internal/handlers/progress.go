package handlers

import (
	"errors"
	"log"

	"github.com/hamrazafsal1998/SkillTrackr/internal/database"
	"github.com/hamrazafsal1998/SkillTrackr/internal/middleware"
	"github.com/hamrazafsal1998/SkillTrackr/internal/models"
	"github.com/hamrazafsal1998/SkillTrackr/internal/services"
	"github.com/hamrazafsal1998/SkillTrackr/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetProgress lists a skill's entries, newest first. The skill lookup
// is owner scoped, so a foreign skill reads as missing.
func GetProgress(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid skill ID",
		})
	}

	var skill models.Skill
	if err := database.DB.Where("id = ? AND user_id = ?", skillID, userID).
		First(&skill).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Skill not found",
		})
	}

	var entries []models.ProgressEntry
	if err := database.DB.Where("skill_id = ?", skillID).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch progress",
		})
	}

	return c.JSON(entries)
}

func CreateProgress(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid skill ID",
		})
	}

	var req models.CreateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if errs := validation.Check(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": errs,
		})
	}

	entry := models.ProgressEntry{
		SkillID:     skillID,
		UserID:      userID,
		Level:       req.Level,
		Description: req.Description,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date",
			})
		}
		entry.Date = date
	}

	var skill models.Skill
	if err := database.DB.Where("id = ? AND user_id = ?", skillID, userID).
		First(&skill).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Skill not found",
		})
	}

	// The image is written only after every check above has passed, and
	// removed again if the insert fails, so a rejected request never
	// leaves a stored file behind.
	image, status, msg := storeImage(c, "image")
	if status != 0 {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	entry.Image = image

	if err := database.DB.Create(&entry).Error; err != nil {
		removeImageFile(image)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create progress entry",
		})
	}

	// The entry is in; a failed recompute must not take it back down.
	if err := services.RaiseLevel(database.DB, skillID, userID, entry.Level); err != nil {
		log.Printf("progress recompute failed for skill %s: %v", skillID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func UpdateProgress(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid progress entry ID",
		})
	}

	var req models.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if errs := validation.Check(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": errs,
		})
	}

	var entry models.ProgressEntry
	if err := database.DB.Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Progress entry not found",
		})
	}

	if req.Level != nil {
		entry.Level = *req.Level
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date",
			})
		}
		entry.Date = date
	}

	oldImage := entry.Image
	newImage, status, msg := storeImage(c, "image")
	if status != 0 {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	if newImage != "" {
		entry.Image = newImage
	}

	if err := database.DB.Save(&entry).Error; err != nil {
		removeImageFile(newImage)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update progress entry",
		})
	}
	if newImage != "" && oldImage != newImage {
		removeImageFile(oldImage)
	}

	// An edit can lower the max logged level, so rederive from the full
	// entry set rather than comparing against the new value alone.
	if err := services.RecomputeFromEntries(database.DB, entry.SkillID, userID); err != nil {
		if errors.Is(err, services.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Skill was updated concurrently, please retry",
			})
		}
		log.Printf("progress recompute failed for skill %s: %v", entry.SkillID, err)
	}

	return c.JSON(entry)
}

func DeleteProgress(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid progress entry ID",
		})
	}

	var entry models.ProgressEntry
	if err := database.DB.Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Progress entry not found",
		})
	}

	if err := database.DB.Delete(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete progress entry",
		})
	}

	removeImageFile(entry.Image)

	if err := services.RecomputeFromEntries(database.DB, entry.SkillID, userID); err != nil {
		if errors.Is(err, services.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Skill was updated concurrently, please retry",
			})
		}
		log.Printf("progress recompute failed for skill %s: %v", entry.SkillID, err)
	}

	return c.JSON(fiber.Map{"message": "Progress entry deleted"})
}
