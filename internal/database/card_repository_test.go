package database

import (
	"testing"
	"time"

	"github.com/example/vocabbot/pkg/models"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var testTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// setupTestDB points the package at an in-memory SQLite database
func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	DB = db
	if err := initializeSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		DB = nil
	})
}

func seedWord(t *testing.T, word string) int64 {
	t.Helper()
	topic := &models.Topic{Name: "test-" + word}
	if err := NewTopicRepository().Create(topic); err != nil {
		t.Fatalf("failed to create topic: %v", err)
	}
	w := &models.Word{Word: word, Translation: "перевод", TopicID: topic.ID}
	if err := NewWordRepository().Create(w); err != nil {
		t.Fatalf("failed to create word: %v", err)
	}
	return w.ID
}

func TestCardRepositoryCreateAndGet(t *testing.T) {
	setupTestDB(t)
	repo := NewCardRepository()
	wordID := seedWord(t, "casa")

	card, err := models.NewCardForWord(100, wordID, testTime)
	if err != nil {
		t.Fatalf("NewCardForWord: %v", err)
	}
	if err := repo.Create(&card); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if card.ID == 0 {
		t.Fatal("Create did not set the card ID")
	}

	got, err := repo.GetByUserAndWord(100, wordID)
	if err != nil {
		t.Fatalf("GetByUserAndWord: %v", err)
	}
	if got.State != "new" || got.UserID != 100 || got.WordID != wordID {
		t.Errorf("unexpected card: %+v", got)
	}
}

func TestCardRepositoryDueQuery(t *testing.T) {
	setupTestDB(t)
	repo := NewCardRepository()

	ids := []int64{seedWord(t, "uno"), seedWord(t, "dos"), seedWord(t, "tres")}
	dues := []time.Time{
		testTime.Add(-2 * time.Hour), // due
		testTime.Add(time.Hour),      // not due
		testTime.Add(-48 * time.Hour), // due, earliest
	}
	for i, wordID := range ids {
		card, err := models.NewCardForWord(100, wordID, dues[i])
		if err != nil {
			t.Fatalf("NewCardForWord: %v", err)
		}
		if err := repo.Create(&card); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	due, err := repo.GetDueForUser(100, testTime)
	if err != nil {
		t.Fatalf("GetDueForUser: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("got %d due cards, want 2", len(due))
	}
	if due[0].WordID != ids[2] || due[1].WordID != ids[0] {
		t.Errorf("due order = %d,%d, want %d,%d", due[0].WordID, due[1].WordID, ids[2], ids[0])
	}

	count, err := repo.CountDueForUser(100, testTime)
	if err != nil {
		t.Fatalf("CountDueForUser: %v", err)
	}
	if count != 2 {
		t.Errorf("CountDueForUser = %d, want 2", count)
	}
}

func TestCardRepositoryUpdate(t *testing.T) {
	setupTestDB(t)
	repo := NewCardRepository()
	wordID := seedWord(t, "casa")

	card, err := models.NewCardForWord(100, wordID, testTime)
	if err != nil {
		t.Fatalf("NewCardForWord: %v", err)
	}
	if err := repo.Create(&card); err != nil {
		t.Fatalf("Create: %v", err)
	}

	card.State = "review"
	card.Stability = 5.8
	card.Difficulty = 4.0
	card.Due = testTime.AddDate(0, 0, 6)
	card.Reps = 1
	if err := repo.Update(&card); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(card.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.State != "review" || got.Stability != 5.8 || got.Reps != 1 {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestMigrateLegacyProgress(t *testing.T) {
	setupTestDB(t)
	wordID := seedWord(t, "casa")

	_, err := DB.Exec(`
		INSERT INTO user_progress (user_id, word_id, easiness_factor, interval, repetitions, lapses)
		VALUES (100, $1, 2.0, 10, 3, 1)
	`, wordID)
	if err != nil {
		t.Fatalf("failed to seed legacy row: %v", err)
	}

	result, err := MigrateLegacyProgress(testTime)
	if err != nil {
		t.Fatalf("MigrateLegacyProgress: %v", err)
	}
	if result.Migrated != 1 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v, want 1 migrated without errors", result)
	}

	card, err := NewCardRepository().GetByUserAndWord(100, wordID)
	if err != nil {
		t.Fatalf("GetByUserAndWord after migration: %v", err)
	}
	if card.State != "review" {
		t.Errorf("State = %q, want review", card.State)
	}
	if card.Stability != 10 || card.Difficulty != 3 {
		t.Errorf("memory = %v/%v, want 10/3", card.Stability, card.Difficulty)
	}
	if card.Reps != 3 || card.Lapses != 1 {
		t.Errorf("counters = %d/%d, want 3/1", card.Reps, card.Lapses)
	}

	// Running the migration again must not duplicate anything.
	second, err := MigrateLegacyProgress(testTime)
	if err != nil {
		t.Fatalf("second MigrateLegacyProgress: %v", err)
	}
	if second.Migrated != 0 || second.Skipped != 0 {
		t.Errorf("second run = %+v, want nothing to do", second)
	}
}
