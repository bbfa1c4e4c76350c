package services

import (
	"errors"

	"github.com/hamrazafsal1998/SkillTrackr/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrConflict means a concurrent writer beat the recompute twice in a
// row. The triggering entry write has already succeeded; callers
// surface this as a transient failure.
var ErrConflict = errors.New("skill recompute lost a concurrent update")

// RaiseLevel is the entry-creation path of the consistency updater: if
// the logged level is above the skill's current level, raise it and
// rederive the percentage. Lower or equal levels never lower the
// high-water mark. A skill deleted underneath us is a silent no-op —
// the entry write this was triggered by stands on its own.
//
// The write is guarded by "current_level < ?" so two concurrent
// submissions cannot lose the higher level: whichever writer carries
// the lower level simply matches zero rows.
func RaiseLevel(db *gorm.DB, skillID, userID uuid.UUID, level int) error {
	var skill models.Skill
	err := db.Where("id = ? AND user_id = ?", skillID, userID).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if level <= skill.CurrentLevel {
		return nil
	}

	skill.CurrentLevel = level
	skill.Recompute()

	return db.Model(&models.Skill{}).
		Where("id = ? AND current_level < ?", skillID, level).
		Updates(map[string]interface{}{
			"current_level":       skill.CurrentLevel,
			"progress_percentage": skill.ProgressPercentage,
			"updated_at":          skill.UpdatedAt,
		}).Error
}

// RecomputeFromEntries is the edit/delete path: rederive the skill's
// current level from the full set of remaining entries, so the derived
// state is always a pure function of the log. The update is optimistic
// on the previously read current_level and retried once before giving
// up with ErrConflict.
func RecomputeFromEntries(db *gorm.DB, skillID, userID uuid.UUID) error {
	for attempt := 0; attempt < 2; attempt++ {
		var skill models.Skill
		err := db.Where("id = ? AND user_id = ?", skillID, userID).First(&skill).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var maxLogged int
		err = db.Model(&models.ProgressEntry{}).
			Where("skill_id = ?", skillID).
			Select("COALESCE(MAX(level), 0)").
			Scan(&maxLogged).Error
		if err != nil {
			return err
		}

		oldLevel := skill.CurrentLevel
		skill.ApplyMaxLevel(maxLogged)

		res := db.Model(&models.Skill{}).
			Where("id = ? AND current_level = ?", skillID, oldLevel).
			Updates(map[string]interface{}{
				"current_level":       skill.CurrentLevel,
				"progress_percentage": skill.ProgressPercentage,
				"updated_at":          skill.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
	}
	return ErrConflict
}
