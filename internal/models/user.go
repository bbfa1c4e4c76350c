package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-"`
	Avatar    string         `json:"avatar"`
	Bio       string         `json:"bio"`
	Theme     string         `json:"theme" gorm:"default:light"` // light, dark
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	Skills    []Skill        `json:"skills,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicProfile returns the fields safe to show on a portfolio page.
// Email and password never leave through this path.
func (u *User) PublicProfile() fiberMap {
	return fiberMap{
		"username": u.Username,
		"bio":      u.Bio,
		"avatar":   u.Avatar,
	}
}

// fiberMap mirrors fiber.Map without importing fiber into the models package.
type fiberMap = map[string]interface{}

// Auth DTOs
type SignupRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,alphanum,min=3,max=30"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Theme    *string `json:"theme" validate:"omitempty,oneof=light dark"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
