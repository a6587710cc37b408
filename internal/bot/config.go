package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Maximum number of cards reviewed in one /review session
	ReviewBatchSize int
	// Number of new words introduced by one /learn command
	NewWordsPerSession int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		ReviewBatchSize:    20,
		NewWordsPerSession: 5,
	}
}
