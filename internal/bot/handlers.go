package bot

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/vocabbot/internal/excel"
	"github.com/example/vocabbot/internal/fsrs"
	"github.com/example/vocabbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleUpdate dispatches an incoming Telegram update
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.Document != nil:
		b.handleDocument(update.Message)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	}
}

// handleCommand processes bot commands
func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	userID := msg.From.ID

	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "review":
		b.handleReview(userID)
	case "learn":
		b.handleLearn(userID)
	case "stats":
		b.handleStats(userID)
	case "settings":
		b.handleSettings(userID)
	case "import":
		b.handleImport(userID)
	default:
		b.send(tgbotapi.NewMessage(userID, "Unknown command. Try /review, /learn or /stats."))
	}
}

// handleStart registers the user and shows a short intro
func (b *Bot) handleStart(msg *tgbotapi.Message) {
	user := &models.User{
		ID:        msg.From.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		LastName:  msg.From.LastName,
	}
	if err := b.userRepo.CreateOrUpdate(user); err != nil {
		log.Printf("Failed to register user %d: %v", user.ID, err)
	}

	text := "👋 Welcome! I help you learn vocabulary with spaced repetition.\n\n" +
		"/learn — pick up new words\n" +
		"/review — review what's due\n" +
		"/stats — your progress\n" +
		"/settings — reminders and daily volume"
	b.send(tgbotapi.NewMessage(msg.From.ID, text))
}

// handleReview starts a review session with the earliest due card
func (b *Bot) handleReview(userID int64) {
	cards, err := b.cardRepo.GetDueForUser(userID, b.now())
	if err != nil {
		log.Printf("Failed to get due cards for user %d: %v", userID, err)
		b.send(tgbotapi.NewMessage(userID, "Something went wrong, try again later."))
		return
	}
	if len(cards) == 0 {
		b.send(tgbotapi.NewMessage(userID, "✅ Nothing due right now. Come back later or /learn new words."))
		return
	}
	b.resetBatch(userID)
	b.sendReviewCard(userID, &cards[0])
}

// sendReviewCard shows one card with a "show answer" button
func (b *Bot) sendReviewCard(userID int64, card *models.Card) {
	word, err := b.wordRepo.GetByID(card.WordID)
	if err != nil {
		log.Printf("Failed to get word %d: %v", card.WordID, err)
		return
	}

	msg := tgbotapi.NewMessage(userID, fmt.Sprintf("📝 *%s*\n\nDo you remember what it means?", word.Word))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Show answer", fmt.Sprintf("show:%d", card.ID)),
		),
	)
	b.send(msg)
}

// handleCallback processes inline button presses
func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	// Убираем "часики" на кнопке
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}

	parts := strings.Split(query.Data, ":")
	userID := query.From.ID

	switch parts[0] {
	case "show":
		if len(parts) != 2 {
			return
		}
		cardID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return
		}
		b.showAnswer(userID, cardID)
	case "rate":
		if len(parts) != 3 {
			return
		}
		cardID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return
		}
		rating, err := strconv.Atoi(parts[2])
		if err != nil {
			return
		}
		b.rateCard(userID, cardID, fsrs.Rating(rating))
	case "notify":
		if len(parts) != 2 {
			return
		}
		b.toggleNotifications(userID, parts[1] == "on")
	}
}

// showAnswer reveals the translation and asks for a rating. The rating
// buttons carry the interval each answer would schedule, taken from a
// fuzz-free preview.
func (b *Bot) showAnswer(userID, cardID int64) {
	card, err := b.cardRepo.GetByID(cardID)
	if err != nil {
		log.Printf("Failed to get card %d: %v", cardID, err)
		return
	}
	word, err := b.wordRepo.GetByID(card.WordID)
	if err != nil {
		log.Printf("Failed to get word %d: %v", card.WordID, err)
		return
	}

	memory, err := card.Memory()
	if err != nil {
		log.Printf("Card %d is corrupted: %v", card.ID, err)
		return
	}
	preview, err := b.engine.Preview(memory, b.now())
	if err != nil {
		log.Printf("Failed to preview card %d: %v", card.ID, err)
		return
	}

	text := fmt.Sprintf("📝 *%s* — %s", word.Word, word.Translation)
	if word.Examples != "" {
		text += fmt.Sprintf("\n\n_%s_", word.Examples)
	}
	text += "\n\nHow well did you remember it?"

	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			ratingButton("❌ Again", card.ID, fsrs.Again, preview),
			ratingButton("😓 Hard", card.ID, fsrs.Hard, preview),
		),
		tgbotapi.NewInlineKeyboardRow(
			ratingButton("🙂 Good", card.ID, fsrs.Good, preview),
			ratingButton("⚡ Easy", card.ID, fsrs.Easy, preview),
		),
	)
	b.send(msg)
}

// ratingButton labels a rating with its upcoming interval
func ratingButton(label string, cardID int64, rating fsrs.Rating, preview map[fsrs.Rating]fsrs.Card) tgbotapi.InlineKeyboardButton {
	if c, ok := preview[rating]; ok {
		if c.ScheduledDays >= 1 {
			label = fmt.Sprintf("%s (%.0fd)", label, c.ScheduledDays)
		} else {
			label = fmt.Sprintf("%s (<1d)", label)
		}
	}
	return tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("rate:%d:%d", cardID, int(rating)))
}

// rateCard applies the rating through the scheduler and moves on
func (b *Bot) rateCard(userID, cardID int64, rating fsrs.Rating) {
	card, err := b.cardRepo.GetByID(cardID)
	if err != nil {
		log.Printf("Failed to get card %d: %v", cardID, err)
		return
	}

	memory, err := card.Memory()
	if err != nil {
		log.Printf("Card %d is corrupted: %v", card.ID, err)
		b.send(tgbotapi.NewMessage(userID, "This card's data is damaged and was skipped."))
		return
	}

	updated, err := b.engine.Schedule(memory, rating, b.now())
	if err != nil {
		log.Printf("Failed to schedule card %d: %v", card.ID, err)
		return
	}

	card.SetMemory(updated)
	if err := b.cardRepo.Update(card); err != nil {
		log.Printf("Failed to save card %d: %v", card.ID, err)
		return
	}

	if b.batchDone(userID) {
		b.send(tgbotapi.NewMessage(userID,
			fmt.Sprintf("That's %d cards in one session — nice work! Send /review to continue.", b.config.ReviewBatchSize)))
		return
	}

	// Следующая карточка, если есть
	due, err := b.cardRepo.GetDueForUser(userID, b.now())
	if err != nil {
		log.Printf("Failed to get due cards for user %d: %v", userID, err)
		return
	}
	if len(due) == 0 {
		b.send(tgbotapi.NewMessage(userID, "🎉 All done for now!"))
		return
	}
	b.sendReviewCard(userID, &due[0])
}

// handleLearn introduces new words and creates cards for them
func (b *Bot) handleLearn(userID int64) {
	words, err := b.wordRepo.GetUnstartedForUser(userID, b.config.NewWordsPerSession)
	if err != nil {
		log.Printf("Failed to get new words for user %d: %v", userID, err)
		return
	}
	if len(words) == 0 {
		b.send(tgbotapi.NewMessage(userID, "No new words left. Ask an admin to /import more."))
		return
	}

	for i := range words {
		word := &words[i]

		card, err := models.NewCardForWord(userID, word.ID, b.now())
		if err != nil {
			log.Printf("Failed to build card for word %d: %v", word.ID, err)
			continue
		}
		if err := b.cardRepo.Create(&card); err != nil {
			log.Printf("Failed to create card for word %d: %v", word.ID, err)
			continue
		}

		text := fmt.Sprintf("🆕 *%s* — %s", word.Word, word.Translation)
		if word.Description != "" {
			text += "\n" + word.Description
		}
		if example := b.exampleFor(word); example != "" {
			text += fmt.Sprintf("\n\n_%s_", example)
		}
		msg := tgbotapi.NewMessage(userID, text)
		msg.ParseMode = "Markdown"
		b.send(msg)
	}
	b.send(tgbotapi.NewMessage(userID,
		fmt.Sprintf("Added %d word(s) to your queue. They'll come up in /review.", len(words))))
}

// exampleFor returns a usage example, generating one when missing
func (b *Bot) exampleFor(word *models.Word) string {
	if word.Examples != "" {
		return word.Examples
	}
	if b.examples == nil {
		return ""
	}
	example, err := b.examples.GenerateExample(word)
	if err != nil {
		log.Printf("Failed to generate example for %q: %v", word.Word, err)
		return ""
	}
	// Сохраняем, чтобы не ходить в API повторно
	word.Examples = example
	if err := b.wordRepo.Update(word); err != nil {
		log.Printf("Failed to save example for word %d: %v", word.ID, err)
	}
	return example
}

// handleStats formats the user's scheduling statistics
func (b *Bot) handleStats(userID int64) {
	stats, err := b.cardRepo.GetStatisticsForUser(userID, b.now())
	if err != nil {
		log.Printf("Failed to get statistics for user %d: %v", userID, err)
		b.send(tgbotapi.NewMessage(userID, "Something went wrong, try again later."))
		return
	}

	text := fmt.Sprintf(
		"📊 *Your progress*\n\n"+
			"Total cards: %d\n"+
			"New: %d | Learning: %d | Review: %d | Relearning: %d\n"+
			"Due now: %d (overdue: %d)\n"+
			"Average stability: %.1f days\n"+
			"Average difficulty: %.1f / 10",
		stats.Total,
		stats.New, stats.Learning, stats.Review, stats.Relearning,
		stats.Due, stats.Overdue,
		stats.AverageStability,
		stats.AverageDifficulty,
	)
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = "Markdown"
	b.send(msg)
}

// handleSettings shows notification toggles
func (b *Bot) handleSettings(userID int64) {
	user, err := b.userRepo.GetByTelegramID(userID)
	if err != nil {
		b.send(tgbotapi.NewMessage(userID, "Send /start first."))
		return
	}

	status := "off"
	if user.NotificationEnabled {
		status = fmt.Sprintf("on, at %d:00", user.NotificationHour)
	}
	msg := tgbotapi.NewMessage(userID,
		fmt.Sprintf("Reminders: %s\nWords per day: %d", status, user.WordsPerDay))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔔 Enable", "notify:on"),
			tgbotapi.NewInlineKeyboardButtonData("🔕 Disable", "notify:off"),
		),
	)
	b.send(msg)
}

// toggleNotifications flips the reminder flag
func (b *Bot) toggleNotifications(userID int64, enabled bool) {
	user, err := b.userRepo.GetByTelegramID(userID)
	if err != nil {
		log.Printf("Failed to get user %d: %v", userID, err)
		return
	}
	user.NotificationEnabled = enabled
	if err := b.userRepo.UpdateSettings(user); err != nil {
		log.Printf("Failed to update settings for user %d: %v", userID, err)
		return
	}
	if enabled {
		b.send(tgbotapi.NewMessage(userID, "🔔 Reminders enabled."))
	} else {
		b.send(tgbotapi.NewMessage(userID, "🔕 Reminders disabled."))
	}
}

// handleImport asks an admin for a word file
func (b *Bot) handleImport(userID int64) {
	if !b.adminUserIDs[userID] {
		b.send(tgbotapi.NewMessage(userID, "Import is for admins only."))
		return
	}
	b.awaitingImport[userID] = true
	b.send(tgbotapi.NewMessage(userID, "Send me an .xlsx or .csv file with words."))
}

// handleDocument receives the uploaded word file and imports it
func (b *Bot) handleDocument(msg *tgbotapi.Message) {
	userID := msg.From.ID
	if !b.awaitingImport[userID] {
		return
	}
	delete(b.awaitingImport, userID)

	url, err := b.api.GetFileDirectURL(msg.Document.FileID)
	if err != nil {
		log.Printf("Failed to get file URL: %v", err)
		b.send(tgbotapi.NewMessage(userID, "Could not download the file."))
		return
	}

	path := filepath.Join(os.TempDir(), msg.Document.FileName)
	if err := excel.DownloadFile(url, path); err != nil {
		log.Printf("Failed to download import file: %v", err)
		b.send(tgbotapi.NewMessage(userID, "Could not download the file."))
		return
	}
	defer os.Remove(path)

	config := excel.DefaultImportConfig()
	config.FilePath = path
	result, err := excel.ImportWords(config)
	if err != nil {
		log.Printf("Import failed: %v", err)
		b.send(tgbotapi.NewMessage(userID, fmt.Sprintf("Import failed: %v", err)))
		return
	}

	text := fmt.Sprintf("Imported: %d created, %d updated, %d skipped (of %d rows)",
		result.Created, result.Updated, result.Skipped, result.TotalProcessed)
	if len(result.Errors) > 0 {
		text += fmt.Sprintf("\n%d row(s) had errors, see logs", len(result.Errors))
	}
	b.send(tgbotapi.NewMessage(userID, text))
}
