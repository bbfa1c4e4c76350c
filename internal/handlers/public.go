package handlers

import (
	"time"

	"github.com/hamrazafsal1998/SkillTrackr/internal/database"
	"github.com/hamrazafsal1998/SkillTrackr/internal/models"
	"github.com/gofiber/fiber/v2"
)

// GetPublicPortfolio assembles the unauthenticated view of one skill:
// the owner's public profile fields, the skill with a computed daysLeft,
// and its entries in chronological order. Username matches exactly,
// skill name case-insensitively. Owner references and credentials are
// stripped from the payload.
func GetPublicPortfolio(c *fiber.Ctx) error {
	if !publicPortfolios {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	username := c.Params("username")
	skillName := c.Params("skillName")

	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var skill models.Skill
	if err := database.DB.Where("user_id = ? AND LOWER(name) = LOWER(?)", user.ID, skillName).
		First(&skill).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Skill not found",
		})
	}

	var entries []models.ProgressEntry
	if err := database.DB.Where("skill_id = ?", skill.ID).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch progress",
		})
	}

	logs := make([]interface{}, len(entries))
	for i := range entries {
		logs[i] = entries[i].PublicView()
	}

	return c.JSON(fiber.Map{
		"user": user.PublicProfile(),
		"skill": fiber.Map{
			"name":               skill.Name,
			"icon":               skill.Icon,
			"startingLevel":      skill.StartingLevel,
			"currentLevel":       skill.CurrentLevel,
			"mainGoal":           skill.MainGoal,
			"targetDate":         skill.TargetDate,
			"progressPercentage": skill.ProgressPercentage,
			"isCompleted":        skill.IsCompleted,
			"daysLeft":           skill.DaysLeft(time.Now()),
		},
		"progressLogs": logs,
	})
}
