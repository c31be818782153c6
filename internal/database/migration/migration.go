package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelQuery reports whether the last table created by Steps already exists.
const sentinelQuery = "SELECT to_regclass('public.claim_documents') IS NOT NULL"

// Steps is the ordered schema for a fresh database.
var Steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id          UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_name   TEXT          NOT NULL UNIQUE,
  email       TEXT          NOT NULL UNIQUE,
  first_name  TEXT          NOT NULL DEFAULT '',
  last_name   TEXT          NOT NULL DEFAULT '',
  role        TEXT          NOT NULL CHECK (role IN ('Lecturer','Coordinator','AcademicManager','HR')),
  hourly_rate NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (hourly_rate >= 0 AND hourly_rate <= 100000),
  created_at  TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_claims",
		SQL: `CREATE TABLE IF NOT EXISTS claims (
  id              UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  contractor_id   UUID          NOT NULL REFERENCES users (id),
  month_key       CHAR(7)       NOT NULL,
  hours           NUMERIC       NOT NULL CHECK (hours >= 0 AND hours <= 180),
  rate            NUMERIC(12,2) NOT NULL CHECK (rate >= 0),
  status          TEXT          NOT NULL,
  notes           TEXT,
  reviewer_remark VARCHAR(2000),
  coordinator_id  UUID          REFERENCES users (id),
  manager_id      UUID          REFERENCES users (id),
  submitted_at    TIMESTAMPTZ,
  verified_at     TIMESTAMPTZ,
  approved_at     TIMESTAMPTZ,
  rejected_at     TIMESTAMPTZ,
  created_at      TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ   NOT NULL DEFAULT now(),
  version         BIGINT        NOT NULL DEFAULT 1,
  CONSTRAINT uq_claims_contractor_month UNIQUE (contractor_id, month_key),
  CONSTRAINT ck_claims_submitted CHECK (status IN ('Draft','Rejected') OR submitted_at IS NOT NULL)
);`,
	},
	{
		Name: "create_index_claims_status_submitted",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_claims_status_submitted ON claims (status, submitted_at, id);`,
	},
	{
		Name: "create_index_claims_month_key",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_claims_month_key ON claims (month_key);`,
	},
	{
		Name: "create_table_claim_documents",
		SQL: `CREATE TABLE IF NOT EXISTS claim_documents (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  claim_id     UUID        NOT NULL REFERENCES claims (id) ON DELETE CASCADE,
  file_name    TEXT        NOT NULL,
  content_type TEXT        NOT NULL,
  size         BIGINT      NOT NULL CHECK (size > 0),
  storage_path TEXT        NOT NULL UNIQUE,
  uploaded_by  UUID        NOT NULL REFERENCES users (id),
  uploaded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_claim_documents_claim_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_claim_documents_claim_id ON claim_documents (claim_id, uploaded_at);`,
	},
}

// EnsureMigrated creates the schema unless the sentinel table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	log = log.WithFields(logrus.Fields{"component": "database", "db_host": dbHost})

	log.WithFields(logrus.Fields{"event": "db_migration_check", "status": "starting"}).Info("checking schema")

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"status":      "error",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"status":      "success",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	log.WithFields(logrus.Fields{"event": "db_migration_start", "status": "in_progress"}).Info("applying schema")

	for _, step := range Steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migrated")

	return nil
}
