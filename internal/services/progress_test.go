package services

import (
	"testing"
	"time"

	"github.com/hamrazafsal1998/SkillTrackr/internal/models"
	"github.com/hamrazafsal1998/SkillTrackr/internal/testutil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedSkill(t *testing.T, db *gorm.DB, startingLevel int) (models.Skill, uuid.UUID) {
	t.Helper()

	user := models.User{Username: "ada", Email: "ada@example.com", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	skill := models.Skill{
		UserID:        user.ID,
		Name:          "Piano",
		Icon:          "music",
		StartingLevel: startingLevel,
		CurrentLevel:  startingLevel,
		MainGoal:      "Play a full sonata",
		TargetDate:    time.Now().Add(90 * 24 * time.Hour),
	}
	skill.Recompute()
	if err := db.Create(&skill).Error; err != nil {
		t.Fatalf("create skill: %v", err)
	}
	return skill, user.ID
}

func addEntry(t *testing.T, db *gorm.DB, skill models.Skill, userID uuid.UUID, level int) models.ProgressEntry {
	t.Helper()

	entry := models.ProgressEntry{
		SkillID:     skill.ID,
		UserID:      userID,
		Level:       level,
		Description: "practice session",
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if err := RaiseLevel(db, skill.ID, userID, level); err != nil {
		t.Fatalf("RaiseLevel: %v", err)
	}
	return entry
}

func reload(t *testing.T, db *gorm.DB, id uuid.UUID) models.Skill {
	t.Helper()
	var s models.Skill
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		t.Fatalf("reload skill: %v", err)
	}
	return s
}

func TestRaiseLevelScenario(t *testing.T) {
	db := testutil.OpenTestDB(t)
	skill, userID := seedSkill(t, db, 2)

	for _, level := range []int{5, 3, 8} {
		addEntry(t, db, skill, userID, level)
	}

	got := reload(t, db, skill.ID)
	if got.CurrentLevel != 8 {
		t.Fatalf("currentLevel=%d, want 8", got.CurrentLevel)
	}
	if got.ProgressPercentage != 75 {
		t.Fatalf("pct=%d, want 75", got.ProgressPercentage)
	}
}

func TestRaiseLevelLowerEntryLeavesSkillUntouched(t *testing.T) {
	db := testutil.OpenTestDB(t)
	skill, userID := seedSkill(t, db, 2)
	addEntry(t, db, skill, userID, 7)

	before := reload(t, db, skill.ID)
	addEntry(t, db, skill, userID, 4)
	after := reload(t, db, skill.ID)

	if after.CurrentLevel != before.CurrentLevel {
		t.Fatalf("currentLevel changed: %d -> %d", before.CurrentLevel, after.CurrentLevel)
	}
	if after.ProgressPercentage != before.ProgressPercentage {
		t.Fatalf("pct changed: %d -> %d", before.ProgressPercentage, after.ProgressPercentage)
	}
}

func TestRaiseLevelMissingSkillIsNoOp(t *testing.T) {
	db := testutil.OpenTestDB(t)
	_, userID := seedSkill(t, db, 2)

	if err := RaiseLevel(db, uuid.New(), userID, 9); err != nil {
		t.Fatalf("RaiseLevel on missing skill: %v", err)
	}

	var count int64
	db.Model(&models.Skill{}).Count(&count)
	if count != 1 {
		t.Fatalf("skill count=%d, want 1 (no skill created)", count)
	}
}

func TestRaiseLevelForeignOwnerIsNoOp(t *testing.T) {
	db := testutil.OpenTestDB(t)
	skill, _ := seedSkill(t, db, 2)

	if err := RaiseLevel(db, skill.ID, uuid.New(), 9); err != nil {
		t.Fatalf("RaiseLevel: %v", err)
	}

	got := reload(t, db, skill.ID)
	if got.CurrentLevel != 2 {
		t.Fatalf("currentLevel=%d, want 2 (foreign owner must not mutate)", got.CurrentLevel)
	}
}

func TestRecomputeFromEntriesAfterDelete(t *testing.T) {
	db := testutil.OpenTestDB(t)
	skill, userID := seedSkill(t, db, 2)

	addEntry(t, db, skill, userID, 5)
	top := addEntry(t, db, skill, userID, 8)

	if err := db.Delete(&top).Error; err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if err := RecomputeFromEntries(db, skill.ID, userID); err != nil {
		t.Fatalf("RecomputeFromEntries: %v", err)
	}

	got := reload(t, db, skill.ID)
	if got.CurrentLevel != 5 {
		t.Fatalf("currentLevel=%d, want 5 after deleting the level-8 entry", got.CurrentLevel)
	}
}

func TestRecomputeFromEntriesNoEntriesLeft(t *testing.T) {
	db := testutil.OpenTestDB(t)
	skill, userID := seedSkill(t, db, 3)

	entry := addEntry(t, db, skill, userID, 9)
	if err := db.Delete(&entry).Error; err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if err := RecomputeFromEntries(db, skill.ID, userID); err != nil {
		t.Fatalf("RecomputeFromEntries: %v", err)
	}

	got := reload(t, db, skill.ID)
	if got.CurrentLevel != 3 {
		t.Fatalf("currentLevel=%d, want starting level 3", got.CurrentLevel)
	}
	if got.ProgressPercentage != 0 {
		t.Fatalf("pct=%d, want 0", got.ProgressPercentage)
	}
}

func TestRecomputeFromEntriesMissingSkillIsNoOp(t *testing.T) {
	db := testutil.OpenTestDB(t)
	_, userID := seedSkill(t, db, 2)

	if err := RecomputeFromEntries(db, uuid.New(), userID); err != nil {
		t.Fatalf("RecomputeFromEntries on missing skill: %v", err)
	}
}

func TestRecomputeFromEntriesStartingLevelTen(t *testing.T) {
	db := testutil.OpenTestDB(t)
	skill, userID := seedSkill(t, db, 10)

	got := reload(t, db, skill.ID)
	if got.ProgressPercentage != 100 {
		t.Fatalf("pct=%d, want 100 before any entry exists", got.ProgressPercentage)
	}

	if err := RecomputeFromEntries(db, skill.ID, userID); err != nil {
		t.Fatalf("RecomputeFromEntries: %v", err)
	}
	got = reload(t, db, skill.ID)
	if got.ProgressPercentage != 100 {
		t.Fatalf("pct=%d, want 100", got.ProgressPercentage)
	}
}
