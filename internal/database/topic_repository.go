package database

import (
	"fmt"

	"github.com/example/vocabbot/pkg/models"
)

// TopicRepository handles database operations for topics
type TopicRepository struct{}

// NewTopicRepository creates a new repository instance
func NewTopicRepository() *TopicRepository {
	return &TopicRepository{}
}

// GetAll returns all topics
func (r *TopicRepository) GetAll() ([]models.Topic, error) {
	var topics []models.Topic
	err := DB.Select(&topics, "SELECT * FROM topics ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get topics: %v", err)
	}
	return topics, nil
}

// GetByID returns a topic by ID
func (r *TopicRepository) GetByID(id int64) (*models.Topic, error) {
	var topic models.Topic
	err := DB.Get(&topic, "SELECT * FROM topics WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic by ID: %v", err)
	}
	return &topic, nil
}

// GetByName returns a topic by its name
func (r *TopicRepository) GetByName(name string) (*models.Topic, error) {
	var topic models.Topic
	err := DB.Get(&topic, "SELECT * FROM topics WHERE name = $1", name)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic by name: %v", err)
	}
	return &topic, nil
}

// Create inserts a new topic
func (r *TopicRepository) Create(topic *models.Topic) error {
	query := "INSERT INTO topics (name) VALUES ($1)"

	if DB.DriverName() == "postgres" {
		if err := DB.QueryRow(query+" RETURNING id", topic.Name).Scan(&topic.ID); err != nil {
			return fmt.Errorf("failed to create topic: %v", err)
		}
		return nil
	}

	result, err := DB.Exec(query, topic.Name)
	if err != nil {
		return fmt.Errorf("failed to create topic: %v", err)
	}
	id, err := result.LastInsertId()
	if err == nil {
		topic.ID = id
	}
	return nil
}

// Delete removes a topic
func (r *TopicRepository) Delete(id int64) error {
	_, err := DB.Exec("DELETE FROM topics WHERE id = $1", id)
	return err
}
