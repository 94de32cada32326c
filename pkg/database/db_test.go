package database

import (
	"path/filepath"
	"testing"
)

func TestOpenAndMigrate(t *testing.T) {
	cfg := Config{Path: filepath.Join(t.TempDir(), "nested", "test.db")}

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// second run is a no-op
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate again: %v", err)
	}

	for _, table := range []string{"recipes", "stores"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("RECIPEHUB_DB_PATH", "/tmp/custom.db")
	if got := DefaultConfig().Path; got != "/tmp/custom.db" {
		t.Errorf("expected env override, got %s", got)
	}
}
