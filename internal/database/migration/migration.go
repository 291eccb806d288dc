package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id      TEXT        NOT NULL,
  file_name    TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  file_type    TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_user_id ON documents (user_id);`,
	},
	{
		Name: "create_table_document_links",
		SQL: `CREATE TABLE IF NOT EXISTS document_links (
  id                 BIGSERIAL   PRIMARY KEY,
  link_id            UUID        NOT NULL UNIQUE,
  document_id        UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  created_by_user_id TEXT        NOT NULL,
  alias              TEXT,
  is_public          BOOLEAN     NOT NULL DEFAULT false,
  password_hash      TEXT,
  expiration_time    TIMESTAMPTZ,
  visitor_fields     JSONB       NOT NULL DEFAULT '[]'::jsonb,
  created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// Alias uniqueness is per document, enforced by the store so concurrent
		// creates cannot slip past a read-then-write check.
		Name: "create_unique_index_document_links_alias",
		SQL: `CREATE UNIQUE INDEX IF NOT EXISTS uq_document_links_document_alias
  ON document_links (document_id, alias) WHERE alias IS NOT NULL;`,
	},
	{
		Name: "create_index_document_links_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_links_document_id ON document_links (document_id);`,
	},
	{
		Name: "create_table_document_link_visitors",
		SQL: `CREATE TABLE IF NOT EXISTS document_link_visitors (
  id         BIGSERIAL   PRIMARY KEY,
  link_id    UUID        NOT NULL REFERENCES document_links (link_id) ON DELETE CASCADE,
  first_name TEXT        NOT NULL DEFAULT '',
  last_name  TEXT        NOT NULL DEFAULT '',
  email      TEXT        NOT NULL DEFAULT '',
  visited_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_document_link_visitors_link_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_link_visitors_link_id ON document_link_visitors (link_id);`,
	},
	{
		Name: "create_table_document_analytics_events",
		SQL: `CREATE TABLE IF NOT EXISTS document_analytics_events (
  id          BIGSERIAL   PRIMARY KEY,
  document_id UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  link_id     UUID        REFERENCES document_links (link_id) ON DELETE CASCADE,
  visitor_id  BIGINT,
  event_type  TEXT        NOT NULL CHECK (event_type IN ('VIEW', 'DOWNLOAD')),
  occurred_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  meta        JSONB
);`,
	},
	{
		Name: "create_index_document_analytics_events_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_analytics_events_document_id ON document_analytics_events (document_id, occurred_at);`,
	},
	{
		Name: "create_index_document_analytics_events_link_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_analytics_events_link_id ON document_analytics_events (link_id);`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.document_analytics_events') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
