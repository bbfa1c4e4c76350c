package handlers

import (
	"log"
	"time"

	"github.com/hamrazafsal1998/SkillTrackr/internal/database"
	"github.com/hamrazafsal1998/SkillTrackr/internal/middleware"
	"github.com/hamrazafsal1998/SkillTrackr/internal/models"
	"github.com/hamrazafsal1998/SkillTrackr/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// parseDate accepts RFC3339 timestamps or bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func GetSkills(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var skills []models.Skill
	if err := database.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&skills).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch skills",
		})
	}

	return c.JSON(skills)
}

func GetSkill(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	skillID, err := uuid.Parse(c.Params("id"))
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

	return c.JSON(skill)
}

func CreateSkill(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateSkillRequest
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

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid target date",
		})
	}

	icon := req.Icon
	if icon == "" {
		icon = "other"
	}

	skill := models.Skill{
		UserID:        userID,
		Name:          req.Name,
		Icon:          icon,
		StartingLevel: req.StartingLevel,
		CurrentLevel:  req.StartingLevel,
		MainGoal:      req.MainGoal,
		TargetDate:    targetDate,
	}
	skill.Recompute()

	if err := database.DB.Create(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create skill",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

func UpdateSkill(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	skillID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid skill ID",
		})
	}

	var req models.UpdateSkillRequest
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

	var targetDate time.Time
	if req.TargetDate != nil {
		targetDate, err = parseDate(*req.TargetDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid target date",
			})
		}
	}

	// Only the settable columns are written, keyed on the current level
	// staying put, so a concurrent entry raising the level is never
	// clobbered with a stale read. One retry, then give up.
	for attempt := 0; attempt < 2; attempt++ {
		var skill models.Skill
		if err := database.DB.Where("id = ? AND user_id = ?", skillID, userID).
			First(&skill).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Skill not found",
			})
		}

		if req.Name != nil {
			skill.Name = *req.Name
		}
		if req.Icon != nil {
			skill.Icon = *req.Icon
		}
		if req.MainGoal != nil {
			skill.MainGoal = *req.MainGoal
		}
		if req.TargetDate != nil {
			skill.TargetDate = targetDate
		}
		if req.IsCompleted != nil {
			skill.IsCompleted = *req.IsCompleted
		}

		// Derived fields always go through the one recompute path.
		skill.Recompute()

		res := database.DB.Model(&models.Skill{}).
			Where("id = ? AND current_level = ?", skillID, skill.CurrentLevel).
			Updates(map[string]interface{}{
				"name":                skill.Name,
				"icon":                skill.Icon,
				"main_goal":           skill.MainGoal,
				"target_date":         skill.TargetDate,
				"is_completed":        skill.IsCompleted,
				"progress_percentage": skill.ProgressPercentage,
				"updated_at":          skill.UpdatedAt,
			})
		if res.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update skill",
			})
		}
		if res.RowsAffected > 0 {
			return c.JSON(skill)
		}
	}

	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error": "Skill was updated concurrently, please retry",
	})
}

func DeleteSkill(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	skillID, err := uuid.Parse(c.Params("id"))
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

	// Collect image paths before the rows go away
	var images []string
	if err := database.DB.Model(&models.ProgressEntry{}).
		Where("skill_id = ? AND image <> ''", skillID).
		Pluck("image", &images).Error; err != nil {
		log.Printf("failed to collect image paths for skill %s: %v", skillID, err)
	}

	// Delete the skill and its entries together so no orphan entries remain
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("skill_id = ?", skillID).Delete(&models.ProgressEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&skill).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete skill",
		})
	}

	for _, img := range images {
		removeImageFile(img)
	}

	return c.JSON(fiber.Map{"message": "Skill deleted"})
}
