package handlers

import (
	"errors"
	"testing"

	"github.com/hamrazafsal1998/SkillTrackr/internal/database"
	"github.com/hamrazafsal1998/SkillTrackr/internal/models"
	"github.com/hamrazafsal1998/SkillTrackr/internal/testutil"
)

func TestIsDuplicateKey(t *testing.T) {
	database.DB = testutil.OpenTestDB(t)

	first := models.User{Username: "ada", Email: "ada@example.com", Password: "x"}
	if err := database.DB.Create(&first).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Same username, different email — hits the unique index directly,
	// the way a signup racing past the exists check would
	second := models.User{Username: "ada", Email: "other@example.com", Password: "x"}
	err := database.DB.Create(&second).Error
	if err == nil {
		t.Fatalf("expected a unique constraint violation")
	}
	if !isDuplicateKey(err) {
		t.Fatalf("isDuplicateKey(%v) = false, want true", err)
	}

	if isDuplicateKey(errors.New("disk I/O error")) {
		t.Fatalf("unrelated error classified as duplicate key")
	}
}
