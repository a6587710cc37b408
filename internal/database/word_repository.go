package database

import (
	"fmt"

	"github.com/example/vocabbot/pkg/models"
)

// WordRepository handles database operations for words
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetAll returns all words
func (r *WordRepository) GetAll() ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, "SELECT * FROM words ORDER BY word")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %v", err)
	}
	return words, nil
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(id int64) (*models.Word, error) {
	var word models.Word
	err := DB.Get(&word, "SELECT * FROM words WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %v", err)
	}
	return &word, nil
}

// GetByTopic returns words for a specific topic
func (r *WordRepository) GetByTopic(topicID int64) ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, "SELECT * FROM words WHERE topic_id = $1 ORDER BY word", topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get words by topic: %v", err)
	}
	return words, nil
}

// GetByWordAndTopic returns a word by its text within a topic
func (r *WordRepository) GetByWordAndTopic(word string, topicID int64) (*models.Word, error) {
	var w models.Word
	err := DB.Get(&w, "SELECT * FROM words WHERE word = $1 AND topic_id = $2", word, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %v", err)
	}
	return &w, nil
}

// GetUnstartedForUser returns words the user has no card for yet
func (r *WordRepository) GetUnstartedForUser(userID int64, limit int) ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, `
		SELECT w.* FROM words w
		WHERE NOT EXISTS (
			SELECT 1 FROM cards c WHERE c.word_id = w.id AND c.user_id = $1
		)
		ORDER BY w.id
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get unstarted words: %v", err)
	}
	return words, nil
}

// Create inserts a new word
func (r *WordRepository) Create(word *models.Word) error {
	query := `
		INSERT INTO words (word, translation, description, examples, topic_id, pronunciation)
		VALUES ($1, $2, $3, $4, $5, $6)`
	args := []interface{}{
		word.Word,
		word.Translation,
		word.Description,
		word.Examples,
		word.TopicID,
		word.Pronunciation,
	}

	if DB.DriverName() == "postgres" {
		if err := DB.QueryRow(query+" RETURNING id", args...).Scan(&word.ID); err != nil {
			return fmt.Errorf("failed to create word: %v", err)
		}
		return nil
	}

	result, err := DB.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}
	id, err := result.LastInsertId()
	if err == nil {
		word.ID = id
	}
	return nil
}

// Update modifies an existing word
func (r *WordRepository) Update(word *models.Word) error {
	_, err := DB.Exec(`
		UPDATE words SET
			word = $1,
			translation = $2,
			description = $3,
			examples = $4,
			topic_id = $5,
			pronunciation = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
	`,
		word.Word,
		word.Translation,
		word.Description,
		word.Examples,
		word.TopicID,
		word.Pronunciation,
		word.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update word: %v", err)
	}
	return nil
}

// Delete removes a word
func (r *WordRepository) Delete(id int64) error {
	_, err := DB.Exec("DELETE FROM words WHERE id = $1", id)
	return err
}
