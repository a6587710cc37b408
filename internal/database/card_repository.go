package database

import (
	"fmt"
	"time"

	"github.com/example/vocabbot/internal/fsrs"
	"github.com/example/vocabbot/pkg/models"
)

// CardRepository handles database operations for scheduling cards
type CardRepository struct{}

// NewCardRepository creates a new repository instance
func NewCardRepository() *CardRepository {
	return &CardRepository{}
}

// GetByUserAndWord returns the card for a specific user and word
func (r *CardRepository) GetByUserAndWord(userID, wordID int64) (*models.Card, error) {
	var card models.Card
	err := DB.Get(&card, "SELECT * FROM cards WHERE user_id = $1 AND word_id = $2", userID, wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %v", err)
	}
	return &card, nil
}

// GetByID returns a card by its primary key
func (r *CardRepository) GetByID(id int64) (*models.Card, error) {
	var card models.Card
	err := DB.Get(&card, "SELECT * FROM cards WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get card by ID: %v", err)
	}
	return &card, nil
}

// GetAllForUser returns every card the user has, regardless of due date
func (r *CardRepository) GetAllForUser(userID int64) ([]models.Card, error) {
	var cards []models.Card
	err := DB.Select(&cards, "SELECT * FROM cards WHERE user_id = $1 ORDER BY due ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %v", err)
	}
	return cards, nil
}

// GetDueForUser returns cards due for review at the given time, earliest first
func (r *CardRepository) GetDueForUser(userID int64, now time.Time) ([]models.Card, error) {
	var cards []models.Card
	err := DB.Select(&cards, `
		SELECT * FROM cards
		WHERE user_id = $1 AND due <= $2
		ORDER BY due ASC
	`, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get due cards: %v", err)
	}
	return cards, nil
}

// CountDueForUser returns how many cards are due at the given time
func (r *CardRepository) CountDueForUser(userID int64, now time.Time) (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM cards WHERE user_id = $1 AND due <= $2", userID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due cards: %v", err)
	}
	return count, nil
}

// Create inserts a new card
func (r *CardRepository) Create(card *models.Card) error {
	query := `
		INSERT INTO cards (
			user_id, word_id, state, difficulty, stability, due,
			last_review, reps, lapses, elapsed_days, scheduled_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	args := []interface{}{
		card.UserID,
		card.WordID,
		card.State,
		card.Difficulty,
		card.Stability,
		card.Due,
		card.LastReview,
		card.Reps,
		card.Lapses,
		card.ElapsedDays,
		card.ScheduledDays,
	}

	// lib/pq не поддерживает LastInsertId, поэтому id читаем через RETURNING
	if DB.DriverName() == "postgres" {
		if err := DB.QueryRow(query+" RETURNING id", args...).Scan(&card.ID); err != nil {
			return fmt.Errorf("failed to create card: %v", err)
		}
		return nil
	}

	result, err := DB.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to create card: %v", err)
	}
	id, err := result.LastInsertId()
	if err == nil {
		card.ID = id
	}
	return nil
}

// Update writes the card's scheduling state back to storage
func (r *CardRepository) Update(card *models.Card) error {
	_, err := DB.Exec(`
		UPDATE cards SET
			state = $1,
			difficulty = $2,
			stability = $3,
			due = $4,
			last_review = $5,
			reps = $6,
			lapses = $7,
			elapsed_days = $8,
			scheduled_days = $9,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
	`,
		card.State,
		card.Difficulty,
		card.Stability,
		card.Due,
		card.LastReview,
		card.Reps,
		card.Lapses,
		card.ElapsedDays,
		card.ScheduledDays,
		card.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card: %v", err)
	}
	return nil
}

// Delete removes a card
func (r *CardRepository) Delete(id int64) error {
	_, err := DB.Exec("DELETE FROM cards WHERE id = $1", id)
	return err
}

// GetStatisticsForUser loads all of the user's cards and summarizes them
// with the scheduler's statistics function.
func (r *CardRepository) GetStatisticsForUser(userID int64, now time.Time) (fsrs.Statistics, error) {
	rows, err := r.GetAllForUser(userID)
	if err != nil {
		return fsrs.Statistics{}, err
	}

	cards := make([]fsrs.Card, 0, len(rows))
	for i := range rows {
		card, err := rows[i].Memory()
		if err != nil {
			return fsrs.Statistics{}, fmt.Errorf("card %d: %v", rows[i].ID, err)
		}
		cards = append(cards, card)
	}
	return fsrs.Stats(cards, now), nil
}
