package database_test

import (
	"os"
	"testing"

	"task-tracker/internal/config"
	"task-tracker/internal/database"
	"task-tracker/internal/models"
)

func setupTestConfig(t *testing.T) *config.Config {
	os.Clearenv()
	os.Setenv("DB_DRIVER", "sqlite")
	os.Setenv("DB_PATH", ":memory:")
	t.Cleanup(os.Clearenv)

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func TestConnect_Ping(t *testing.T) {
	cfg := setupTestConfig(t)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying sql.DB: %v", err)
	}

	if err := sqlDB.Ping(); err != nil {
		t.Errorf("Failed to ping database: %v", err)
	}
}

func TestConnect_CreatesTasksTable(t *testing.T) {
	cfg := setupTestConfig(t)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer database.Close(db)

	var count int64
	if err := db.Model(&models.Task{}).Count(&count).Error; err != nil {
		t.Errorf("Failed to query tasks table: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty tasks table, got %d rows", count)
	}
}

func TestConnect_UnknownDriver(t *testing.T) {
	cfg := setupTestConfig(t)
	cfg.Database.Driver = "oracle"

	if _, err := database.Connect(cfg); err == nil {
		t.Error("Expected an error for an unknown driver")
	}
}
