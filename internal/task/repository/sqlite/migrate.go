package sqlite

import (
	"database/sql"
	"fmt"
)

// schemaVersion is the latest schema version. Bump it when adding migrations.
const schemaVersion = 1

// migrate applies schema migrations based on the user_version pragma.
func migrate(db *sql.DB) error {
	version, err := userVersion(db)
	if err != nil {
		return err
	}

	if version < 1 {
		const schema = `
		CREATE TABLE IF NOT EXISTS tasks (
		  id                INTEGER PRIMARY KEY AUTOINCREMENT,
		  user_id           INTEGER NOT NULL,
		  chat_id           INTEGER NOT NULL,
		  title             TEXT NOT NULL,
		  description       TEXT NOT NULL DEFAULT '',
		  due_at            INTEGER,
		  remind_at         INTEGER,
		  repeat_rule       TEXT NOT NULL DEFAULT '',
		  notion_page_id    TEXT NOT NULL DEFAULT '',
		  calendar_event_id TEXT NOT NULL DEFAULT '',
		  status            TEXT NOT NULL DEFAULT 'open',
		  reminded_at       INTEGER,
		  created_at        INTEGER NOT NULL,
		  updated_at        INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_user_status
		ON tasks(user_id, status);

		CREATE INDEX IF NOT EXISTS idx_tasks_pending_reminders
		ON tasks(remind_at)
		WHERE status = 'open' AND reminded_at IS NULL;
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := setUserVersion(db, 1); err != nil {
			return err
		}
	}

	return nil
}

func userVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

func setUserVersion(db *sql.DB, version int) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
