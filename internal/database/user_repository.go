package database

import (
	"fmt"

	"github.com/example/vocabbot/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByTelegramID returns a user by Telegram ID
func (r *UserRepository) GetByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, `
		SELECT telegram_id, username, first_name, last_name, is_admin,
		       notification_enabled, notification_hour, words_per_day,
		       created_at, updated_at
		FROM users WHERE telegram_id = $1
	`, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// GetAll returns all registered users
func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	err := DB.Select(&users, `
		SELECT telegram_id, username, first_name, last_name, is_admin,
		       notification_enabled, notification_hour, words_per_day,
		       created_at, updated_at
		FROM users
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %v", err)
	}
	return users, nil
}

// GetUsersForNotification returns users who want reminders at the given hour
func (r *UserRepository) GetUsersForNotification(hour int) ([]models.User, error) {
	var users []models.User
	err := DB.Select(&users, `
		SELECT telegram_id, username, first_name, last_name, is_admin,
		       notification_enabled, notification_hour, words_per_day,
		       created_at, updated_at
		FROM users
		WHERE notification_enabled = true AND notification_hour = $1
	`, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %v", err)
	}
	return users, nil
}

// CreateOrUpdate registers a user or refreshes their profile data
func (r *UserRepository) CreateOrUpdate(user *models.User) error {
	var existing int64
	err := DB.QueryRow("SELECT telegram_id FROM users WHERE telegram_id = $1", user.ID).Scan(&existing)
	if err == nil {
		_, err = DB.Exec(`
			UPDATE users SET
				username = $1,
				first_name = $2,
				last_name = $3,
				updated_at = CURRENT_TIMESTAMP
			WHERE telegram_id = $4
		`, user.Username, user.FirstName, user.LastName, user.ID)
		if err != nil {
			return fmt.Errorf("failed to update user: %v", err)
		}
		return nil
	}

	_, err = DB.Exec(`
		INSERT INTO users (telegram_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
	`, user.ID, user.Username, user.FirstName, user.LastName)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	return nil
}

// UpdateSettings stores the user's notification and volume preferences
func (r *UserRepository) UpdateSettings(user *models.User) error {
	_, err := DB.Exec(`
		UPDATE users SET
			notification_enabled = $1,
			notification_hour = $2,
			words_per_day = $3,
			updated_at = CURRENT_TIMESTAMP
		WHERE telegram_id = $4
	`, user.NotificationEnabled, user.NotificationHour, user.WordsPerDay, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user settings: %v", err)
	}
	return nil
}
