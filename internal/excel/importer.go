package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	WordColumn          string // Column with the word
	TranslationColumn   string // Column with the translation
	DescriptionColumn   string // Column with the description
	TopicColumn         string // Column with the topic
	PronunciationColumn string // Column with the pronunciation
	ExamplesColumn      string // Column with the examples
	SheetName           string // Name of the sheet to import
	StartRow            int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:          "A",
		TranslationColumn:   "B",
		DescriptionColumn:   "C",
		TopicColumn:         "D",
		PronunciationColumn: "E",
		ExamplesColumn:      "F",
		SheetName:           "Sheet1",
		StartRow:            2, // По умолчанию пропускаем строку заголовка
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	TopicsCreated  int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportWords imports words from an Excel or CSV file
func ImportWords(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports words from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	ctx, err := newImportContext()
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		ctx.result.TotalProcessed++

		cell := func(column string) string {
			if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		err := ctx.processWord(
			cell(config.WordColumn),
			cell(config.TranslationColumn),
			cell(config.DescriptionColumn),
			cell(config.TopicColumn),
			cell(config.PronunciationColumn),
			cell(config.ExamplesColumn),
		)
		if err != nil {
			ctx.result.Errors = append(ctx.result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return ctx.result, nil
}

// importFromCSV imports words from a CSV file with columns
// word,translation,description,topic,pronunciation,examples
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	ctx, err := newImportContext()
	if err != nil {
		return nil, err
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		ctx.result.TotalProcessed++

		field := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		if err := ctx.processWord(field(0), field(1), field(2), field(3), field(4), field(5)); err != nil {
			ctx.result.Errors = append(ctx.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return ctx.result, nil
}

// importContext carries the repositories and running counters of one import
type importContext struct {
	topicRepo *database.TopicRepository
	wordRepo  *database.WordRepository
	topicMap  map[string]int64
	result    *ImportResult
}

func newImportContext() (*importContext, error) {
	topicRepo := database.NewTopicRepository()

	// Get all existing topics for reference
	existingTopics, err := topicRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing topics: %v", err)
	}
	topicMap := make(map[string]int64)
	for _, topic := range existingTopics {
		topicMap[strings.ToLower(topic.Name)] = topic.ID
	}

	return &importContext{
		topicRepo: topicRepo,
		wordRepo:  database.NewWordRepository(),
		topicMap:  topicMap,
		result:    &ImportResult{Errors: make([]string, 0)},
	}, nil
}

// processWord creates or updates one word row
func (c *importContext) processWord(word, translation, description, topicName, pronunciation, examples string) error {
	word = cleanWord(word)
	if word == "" || translation == "" {
		c.result.Skipped++
		return nil
	}
	if topicName == "" {
		topicName = "General"
	}

	topicID, err := c.getOrCreateTopic(topicName)
	if err != nil {
		return err
	}

	record := models.Word{
		Word:          word,
		Translation:   translation,
		Description:   description,
		Examples:      examples,
		TopicID:       topicID,
		Pronunciation: pronunciation,
	}

	// Обновляем существующее слово, если оно уже есть в этой теме
	existing, err := c.wordRepo.GetByWordAndTopic(word, topicID)
	if err == nil {
		record.ID = existing.ID
		if err := c.wordRepo.Update(&record); err != nil {
			return err
		}
		c.result.Updated++
		return nil
	}

	if err := c.wordRepo.Create(&record); err != nil {
		return err
	}
	c.result.Created++
	return nil
}

// getOrCreateTopic gets a topic by name or creates a new one if it doesn't exist
func (c *importContext) getOrCreateTopic(topicName string) (int64, error) {
	key := strings.ToLower(strings.TrimSpace(topicName))
	if id, exists := c.topicMap[key]; exists {
		return id, nil
	}

	newTopic := &models.Topic{Name: strings.TrimSpace(topicName)}
	if err := c.topicRepo.Create(newTopic); err != nil {
		return 0, fmt.Errorf("failed to create topic: %v", err)
	}
	c.topicMap[key] = newTopic.ID
	c.result.TopicsCreated++
	return newTopic.ID, nil
}

// cleanWord удаляет из слова дополнительную информацию в скобках
func cleanWord(word string) string {
	if idx := strings.Index(word, "("); idx > 0 {
		return strings.TrimSpace(word[:idx])
	}
	return strings.TrimSpace(word)
}

// columnToIndex converts an Excel column letter ("A", "B", ..) to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	idx := 0
	for _, ch := range column {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		idx = idx*26 + int(ch-'A') + 1
	}
	return idx - 1
}

// DownloadFile fetches a file over HTTP into the given path. Used for
// word lists uploaded through Telegram.
func DownloadFile(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download file: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to save file: %v", err)
	}
	return nil
}
