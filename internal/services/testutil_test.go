package services_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/config"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/database"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := &database.DB{DB: sqlDB}
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	cfg, _ := config.Load("")
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.BcryptCost = 4 // keep test hashing fast
	cfg.Admin.Username = "root"
	cfg.Admin.Email = "root@example.com"
	cfg.Admin.Password = "root-password-1"
	cfg.Admin.FullName = "Root Admin"
	return cfg
}
