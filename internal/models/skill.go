package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinLevel = 1
	MaxLevel = 10
)

type Skill struct {
	ID                 uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Name               string         `json:"name" gorm:"not null"`
	Icon               string         `json:"icon" gorm:"not null;default:'other'"`
	StartingLevel      int            `json:"startingLevel" gorm:"not null"`
	CurrentLevel       int            `json:"currentLevel" gorm:"not null"`
	MainGoal           string         `json:"mainGoal" gorm:"not null"`
	TargetDate         time.Time      `json:"targetDate" gorm:"not null"`
	ProgressPercentage int            `json:"progressPercentage" gorm:"default:0"`
	IsCompleted        bool           `json:"isCompleted" gorm:"default:false"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`
	Entries            []ProgressEntry `json:"entries,omitempty" gorm:"foreignKey:SkillID"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Recompute derives ProgressPercentage from the starting and current
// levels. A skill started at the max level has nothing left to gain and
// counts as 100%. This is the only place the percentage is written.
func (s *Skill) Recompute() {
	totalLevels := MaxLevel - s.StartingLevel
	if totalLevels > 0 {
		gained := float64(s.CurrentLevel - s.StartingLevel)
		s.ProgressPercentage = int(math.Round(gained / float64(totalLevels) * 100))
	} else {
		s.ProgressPercentage = 100
	}
	s.UpdatedAt = time.Now()
}

// ApplyMaxLevel sets CurrentLevel from the highest level found in the
// skill's entries. The starting level is the floor: removing every
// entry brings the skill back to where it began, never below.
func (s *Skill) ApplyMaxLevel(maxLogged int) {
	level := s.StartingLevel
	if maxLogged > level {
		level = maxLogged
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	s.CurrentLevel = level
	s.Recompute()
}

// DaysLeft is the number of whole days until the target date, floored
// at zero once the date has passed.
func (s *Skill) DaysLeft(now time.Time) int {
	days := int(math.Ceil(s.TargetDate.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// Skill DTOs
type CreateSkillRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=100"`
	Icon          string `json:"icon" validate:"omitempty,oneof=keyboard dumbbell brush music book code camera gamepad other"`
	StartingLevel int    `json:"startingLevel" validate:"required,min=1,max=10"`
	MainGoal      string `json:"mainGoal" validate:"required,min=1,max=500"`
	TargetDate    string `json:"targetDate" validate:"required"`
}

type UpdateSkillRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon        *string `json:"icon" validate:"omitempty,oneof=keyboard dumbbell brush music book code camera gamepad other"`
	MainGoal    *string `json:"mainGoal" validate:"omitempty,min=1,max=500"`
	TargetDate  *string `json:"targetDate"`
	IsCompleted *bool   `json:"isCompleted"`
}
