package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressEntry is one leveled log record against a skill. SkillID and
// UserID are set at creation and never reassigned.
type ProgressEntry struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SkillID     uuid.UUID `json:"skillId" gorm:"type:uuid;index;not null"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Level       int       `json:"level" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Image       string    `json:"image"` // upload path, empty means no image
	Date        time.Time `json:"date"`  // when the progress happened, not when it was logged
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *ProgressEntry) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return nil
}

// PublicView strips the owner reference for the portfolio payload.
func (p *ProgressEntry) PublicView() fiberMap {
	return fiberMap{
		"id":          p.ID,
		"level":       p.Level,
		"description": p.Description,
		"image":       p.Image,
		"date":        p.Date,
	}
}

// Progress DTOs. Entries arrive as JSON or as multipart forms when an
// image rides along, so both tag sets are needed.
type CreateProgressRequest struct {
	Level       int    `json:"level" form:"level" validate:"required,min=1,max=10"`
	Description string `json:"description" form:"description" validate:"required,min=1,max=1000"`
	Date        string `json:"date" form:"date"`
}

type UpdateProgressRequest struct {
	Level       *int    `json:"level" form:"level" validate:"omitempty,min=1,max=10"`
	Description *string `json:"description" form:"description" validate:"omitempty,min=1,max=1000"`
	Date        *string `json:"date" form:"date"`
}
