package database

import (
	"fmt"
	"log"
	"time"

	"github.com/example/vocabbot/internal/fsrs"
	"github.com/example/vocabbot/pkg/models"
)

// MigrationResult summarizes a legacy migration run
type MigrationResult struct {
	Migrated int
	Skipped  int
	Errors   []string
}

// MigrateLegacyProgress converts rows the old SM-2 scheduler left in
// user_progress into FSRS cards. Each row is migrated at most once: the
// source row is flagged afterwards, and rows whose user/word pair already
// has a card are skipped. Safe to call on every startup.
func MigrateLegacyProgress(now time.Time) (*MigrationResult, error) {
	var legacy []models.LegacyProgress
	err := DB.Select(&legacy, "SELECT * FROM user_progress WHERE migrated = false")
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy progress: %v", err)
	}

	result := &MigrationResult{}
	cardRepo := NewCardRepository()

	for i := range legacy {
		row := &legacy[i]

		// Уже есть карточка для этой пары - пропускаем
		if _, err := cardRepo.GetByUserAndWord(row.UserID, row.WordID); err == nil {
			result.Skipped++
			if err := markMigrated(row.ID); err != nil {
				result.Errors = append(result.Errors, err.Error())
			}
			continue
		}

		memory, err := fsrs.MigrateFromLegacy(row.ToLegacyCard(), now)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("progress %d (user %d, word %d): %v", row.ID, row.UserID, row.WordID, err))
			continue
		}

		card := models.Card{UserID: row.UserID, WordID: row.WordID}
		card.SetMemory(memory)
		if err := cardRepo.Create(&card); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if err := markMigrated(row.ID); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Migrated++
	}

	if result.Migrated > 0 || len(result.Errors) > 0 {
		log.Printf("Legacy migration: %d migrated, %d skipped, %d errors",
			result.Migrated, result.Skipped, len(result.Errors))
	}
	return result, nil
}

// markMigrated flags a legacy row so it is never converted again
func markMigrated(id int64) error {
	_, err := DB.Exec("UPDATE user_progress SET migrated = true WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to mark progress %d migrated: %v", id, err)
	}
	return nil
}
