package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestMigrationFilesExist verifies that migration files are present
func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatalf("migrations directory does not exist: %s", migrationsDir)
	}

	expectedFiles := []string{
		"000001_initial_schema.up.sql",
		"000001_initial_schema.down.sql",
	}

	for _, filename := range expectedFiles {
		filePath := filepath.Join(migrationsDir, filename)
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			t.Errorf("migration file does not exist: %s", filePath)
		}
	}
}

// TestInitialSchemaCoversCoreTables verifies the initial migration creates
// every table the repositories depend on, and that the down migration
// removes them.
func TestInitialSchemaCoversCoreTables(t *testing.T) {
	migrationsDir := "../../migrations"
	coreTables := []string{"users", "pdf_extractions", "lesson_plans", "status_checks"}

	up, err := os.ReadFile(filepath.Join(migrationsDir, "000001_initial_schema.up.sql"))
	if err != nil {
		t.Fatalf("failed to read up migration: %v", err)
	}
	down, err := os.ReadFile(filepath.Join(migrationsDir, "000001_initial_schema.down.sql"))
	if err != nil {
		t.Fatalf("failed to read down migration: %v", err)
	}

	upSQL := string(up)
	downSQL := string(down)

	if !strings.Contains(upSQL, "CREATE TABLE") {
		t.Error("up migration does not contain CREATE TABLE statements")
	}
	if !strings.Contains(downSQL, "DROP TABLE") {
		t.Error("down migration does not contain DROP TABLE statements")
	}

	for _, table := range coreTables {
		if !strings.Contains(upSQL, table) {
			t.Errorf("up migration does not mention table %q", table)
		}
		if !strings.Contains(downSQL, table) {
			t.Errorf("down migration does not mention table %q", table)
		}
	}
}
