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
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id              BIGSERIAL PRIMARY KEY,
  username        TEXT      NOT NULL UNIQUE,
  hashed_password TEXT      NOT NULL
);`,
	},
	{
		Name: "create_table_employees",
		SQL: `CREATE TABLE IF NOT EXISTS employees (
  id                BIGSERIAL   PRIMARY KEY,
  name              TEXT        NOT NULL,
  registration_date TIMESTAMPTZ NOT NULL DEFAULT now(),
  is_archived       BOOLEAN     NOT NULL DEFAULT FALSE
);`,
	},
	{
		Name: "create_table_truckers",
		SQL: `CREATE TABLE IF NOT EXISTS truckers (
  id                BIGSERIAL PRIMARY KEY,
  name              TEXT      NOT NULL,
  company_name      TEXT,
  province_of_issue TEXT      NOT NULL,
  is_archived       BOOLEAN   NOT NULL DEFAULT FALSE
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                BIGSERIAL   PRIMARY KEY,
  title             TEXT        NOT NULL,
  verified          BOOLEAN     NOT NULL DEFAULT FALSE,
  verification_date TIMESTAMPTZ,
  verified_by       TEXT,
  file_key          TEXT UNIQUE,
  file_size         BIGINT      CHECK (file_size IS NULL OR file_size >= 0),
  content_type      TEXT,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_employees_registration_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_employees_registration_date ON employees (registration_date);`,
	},
	{
		Name: "create_index_employees_is_archived",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_employees_is_archived ON employees (is_archived);`,
	},
	{
		Name: "create_index_truckers_province",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_truckers_province ON truckers (province_of_issue);`,
	},
	{
		Name: "create_index_truckers_company",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_truckers_company ON truckers (company_name);`,
	},
	{
		Name: "create_index_documents_verified",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_verified ON documents (verified);`,
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
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
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
