package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/vocabbot/internal/bot"
	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/internal/fsrs"
	"github.com/example/vocabbot/internal/scheduler"
	"github.com/joho/godotenv"
)

func main() {
	// Загружаем .env, если он есть
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Создаем канал для сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Подключаемся к базе данных
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Переносим записи старого SM-2 планировщика, если они остались
	if _, err := database.MigrateLegacyProgress(time.Now()); err != nil {
		log.Fatalf("Failed to migrate legacy progress: %v", err)
	}

	// Один движок планирования на все приложение
	engine, err := fsrs.NewEngine(fsrs.ParametersFromEnv())
	if err != nil {
		log.Fatalf("Failed to create scheduling engine: %v", err)
	}

	b, err := bot.New(engine)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Напоминания о повторениях
	reminders := scheduler.New(b)
	reminders.Start()
	defer reminders.Stop()

	// Канал для ожидания завершения бота
	done := make(chan struct{})

	// Горутина для обработки сигналов
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v\n", sig)
		cancel()
		b.Stop()
		close(done)
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("Bot stopped successfully")
}
