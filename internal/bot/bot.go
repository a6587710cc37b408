package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/vocabbot/internal/ai"
	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/internal/fsrs"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot represents the Telegram bot application
type Bot struct {
	api            *tgbotapi.BotAPI
	engine         *fsrs.Engine
	cardRepo       *database.CardRepository
	wordRepo       *database.WordRepository
	userRepo       *database.UserRepository
	topicRepo      *database.TopicRepository
	examples       *ai.Client // nil when OPENAI_API_KEY is not set
	config         *BotConfig
	adminUserIDs   map[int64]bool
	awaitingImport map[int64]bool
	reviewed       map[int64]int // cards rated in the current /review session
}

// New creates a new bot instance. The scheduling engine is injected so
// the whole application shares one configuration.
func New(engine *fsrs.Engine) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram API client: %v", err)
	}

	var examples *ai.Client
	if os.Getenv("OPENAI_API_KEY") != "" {
		examples, err = ai.New()
		if err != nil {
			log.Printf("Warning: example generation disabled: %v", err)
			examples = nil
		}
	}

	b := &Bot{
		api:            api,
		engine:         engine,
		cardRepo:       database.NewCardRepository(),
		wordRepo:       database.NewWordRepository(),
		userRepo:       database.NewUserRepository(),
		topicRepo:      database.NewTopicRepository(),
		examples:       examples,
		config:         DefaultConfig(),
		adminUserIDs:   make(map[int64]bool),
		awaitingImport: make(map[int64]bool),
		reviewed:       make(map[int64]int),
	}

	// Список администраторов из переменной окружения
	if adminIDs := os.Getenv("ADMIN_USER_IDS"); adminIDs != "" {
		for _, idStr := range strings.Split(adminIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				log.Printf("Warning: invalid admin user ID: %s", idStr)
				continue
			}
			b.adminUserIDs[id] = true
		}
	}

	return b, nil
}

// Start runs the update loop until the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Printf("Authorized on account %s", b.api.Self.UserName)

	for {
		select {
		case update := <-updates:
			b.handleUpdate(update)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop shuts the update channel down
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// resetBatch starts a fresh review session counter for the user
func (b *Bot) resetBatch(userID int64) {
	b.reviewed[userID] = 0
}

// batchDone counts one rated card and reports whether the session hit
// the ReviewBatchSize cap
func (b *Bot) batchDone(userID int64) bool {
	b.reviewed[userID]++
	return b.reviewed[userID] >= b.config.ReviewBatchSize
}

// SendReminders notifies a user about due cards. Implements the
// scheduler's Notifier interface.
func (b *Bot) SendReminders(userID int64, count int) error {
	text := fmt.Sprintf("⏰ You have %d word(s) due for review. Send /review to start.", count)
	msg := tgbotapi.NewMessage(userID, text)
	_, err := b.api.Send(msg)
	return err
}

// send is a small helper that logs failed sends instead of dropping them silently
func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

// now is separated out so review handling has one clock read per update
func (b *Bot) now() time.Time {
	return time.Now()
}
