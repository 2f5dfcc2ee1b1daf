package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"reflecta-journal-be/internal/repository/unitofwork"
	"reflecta-journal-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.EntryRepository())
	assert.NotNil(t, uow.ChatMessageRepository())
	assert.NotNil(t, uow.DailyQuestionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Entry Repository", func(t *testing.T) {
		count, err := uow.EntryRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Entry count: %d", count)
	})

	t.Run("Check Chat Message Repository", func(t *testing.T) {
		count, err := uow.ChatMessageRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ChatMessage count: %d", count)
	})

	t.Run("Check Daily Question Repository", func(t *testing.T) {
		count, err := uow.DailyQuestionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DailyQuestion count: %d", count)
	})
}
