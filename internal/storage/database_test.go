package storage

import (
	"database/sql"
	"errors"
	"testing"
)

func TestNewDatabase_SchemaInitialization(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	tables := []string{
		"session_tabs", "session_groups", "session_group_tabs", "session_split_ratios",
		"session_meta", "saved_sessions", "bookmark_folders", "bookmarks", "history",
	}
	for _, table := range tables {
		var name string
		err = db.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Fatalf("%s table does not exist: %v", table, err)
		}
	}
}

func TestSessionGroups_CascadeDelete(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	_, err = db.DB().Exec(`INSERT INTO session_groups (id, name, collapsed, position) VALUES ('g1', 'Group', 1, 0)`)
	if err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	_, err = db.DB().Exec(`
		INSERT INTO session_group_tabs (group_id, tab_id, position)
		VALUES ('g1', 'a', 0), ('g1', 'b', 1)
	`)
	if err != nil {
		t.Fatalf("failed to create members: %v", err)
	}
	_, err = db.DB().Exec(`INSERT INTO session_split_ratios (group_id, position, ratio) VALUES ('g1', 0, 40), ('g1', 1, 60)`)
	if err != nil {
		t.Fatalf("failed to create ratios: %v", err)
	}

	if _, err := db.DB().Exec("DELETE FROM session_groups WHERE id = ?", "g1"); err != nil {
		t.Fatalf("failed to delete group: %v", err)
	}

	var members, ratios int
	if err := db.DB().QueryRow("SELECT COUNT(*) FROM session_group_tabs").Scan(&members); err != nil {
		t.Fatalf("failed to count members: %v", err)
	}
	if err := db.DB().QueryRow("SELECT COUNT(*) FROM session_split_ratios").Scan(&ratios); err != nil {
		t.Fatalf("failed to count ratios: %v", err)
	}
	if members != 0 || ratios != 0 {
		t.Errorf("expected cascade delete, got %d members and %d ratios", members, ratios)
	}
}

func TestBookmarks_ForeignKeyConstraint(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	_, err = db.DB().Exec(`
		INSERT INTO bookmarks (id, url, title, folder_id, created_at)
		VALUES ('b1', 'https://go.dev', 'Go', 'nonexistent-folder', 0)
	`)
	if err == nil {
		t.Fatal("expected foreign key constraint violation, got nil error")
	}
}

func TestHistory_URLUnique(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	insert := `INSERT INTO history (id, url, title, visited_at) VALUES (?, 'https://go.dev', 'Go', 0)`
	if _, err := db.DB().Exec(insert, "h1"); err != nil {
		t.Fatalf("failed to insert history: %v", err)
	}
	if _, err := db.DB().Exec(insert, "h2"); err == nil {
		t.Fatal("expected unique constraint violation on url")
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	boom := errors.New("boom")
	err = db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO session_meta (key, value) VALUES ('active_tab_id', 'a')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int
	if err := db.DB().QueryRow("SELECT COUNT(*) FROM session_meta").Scan(&count); err != nil {
		t.Fatalf("failed to count meta: %v", err)
	}
	if count != 0 {
		t.Errorf("expected rollback, found %d rows", count)
	}

	err = db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO session_meta (key, value) VALUES ('active_tab_id', 'a')`)
		return err
	})
	if err != nil {
		t.Fatalf("expected commit, got %v", err)
	}
}
