// Package testdb opens throwaway in-memory sqlite databases mirroring the
// production schema layout. Each logical Postgres schema becomes an attached
// sqlite database so the schema-qualified table names in the models resolve
// unchanged.
package testdb

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var schemas = []string{"ops", "clients", "providers", "partners", "geodata", "users"}

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS clients.clients (
  client_id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  tax_id TEXT UNIQUE,
  address TEXT,
  contact_name TEXT,
  contact_phone TEXT,
  contact_email TEXT,
  disabled INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS providers.carriers (
  carrier_id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  contact_name TEXT,
  contact_phone TEXT,
  contact_email TEXT,
  created_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS providers.international_agents (
  agent_id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  tax_id TEXT UNIQUE,
  contact_name TEXT,
  contact_phone TEXT,
  contact_email TEXT,
  created_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS partners.partner_types (
  partner_type_id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT
);`,
	`CREATE TABLE IF NOT EXISTS partners.partners (
  partner_id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  tax_id TEXT UNIQUE,
  webpage TEXT,
  disabled INTEGER NOT NULL DEFAULT 0,
  partner_type_id TEXT NOT NULL,
  country_id INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS partners.partner_contacts (
  partner_contact_id TEXT PRIMARY KEY,
  partner_id TEXT NOT NULL,
  name TEXT NOT NULL,
  position TEXT,
  email TEXT,
  mobile TEXT,
  phone TEXT,
  disabled INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS geodata.countries (
  country_id INTEGER PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  iso2_code TEXT NOT NULL UNIQUE,
  iso3_code TEXT NOT NULL UNIQUE
);`,
	`CREATE TABLE IF NOT EXISTS users.roles (
  role_id TEXT PRIMARY KEY,
  role_name TEXT NOT NULL UNIQUE
);`,
	`CREATE TABLE IF NOT EXISTS users.users (
  user_id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  disabled INTEGER NOT NULL DEFAULT 0,
  role_id TEXT,
  hashed_password TEXT NOT NULL,
  created_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS ops.op_status (
  status_id INTEGER PRIMARY KEY,
  status_name TEXT NOT NULL UNIQUE
);`,
	`CREATE TABLE IF NOT EXISTS ops.op_files (
  op_id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  status_id INTEGER NOT NULL,
  carrier_id TEXT,
  creator_user_id TEXT,
  assignee_user_id TEXT,
  origin_country_id INTEGER,
  destination_country_id INTEGER,
  op_type TEXT,
  origin_location TEXT,
  destination_location TEXT,
  estimated_time_departure DATETIME,
  actual_time_departure DATETIME,
  estimated_time_arrival DATETIME,
  actual_time_arrival DATETIME,
  cargo_description TEXT,
  gross_weight_value NUMERIC,
  gross_weight_unit TEXT,
  volume_value NUMERIC,
  volume_unit TEXT,
  master_transport_doc TEXT,
  house_transport_doc TEXT,
  incoterm TEXT,
  modality TEXT,
  voyage TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS ops.op_file_packages (
  package_id INTEGER PRIMARY KEY AUTOINCREMENT,
  op_id TEXT NOT NULL,
  quantity NUMERIC,
  units TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS ops.op_file_comments (
  comment_id TEXT PRIMARY KEY,
  op_id TEXT NOT NULL,
  author_user_id TEXT,
  content TEXT NOT NULL,
  created_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS ops.op_file_partner_link (
  op_id TEXT NOT NULL,
  partner_id TEXT NOT NULL,
  PRIMARY KEY (op_id, partner_id)
);`,
	`CREATE TABLE IF NOT EXISTS ops.op_file_agent_link (
  op_id TEXT NOT NULL,
  agent_id TEXT NOT NULL,
  PRIMARY KEY (op_id, agent_id)
);`,
	`CREATE TABLE IF NOT EXISTS ops.outbox_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME,
  published_at DATETIME,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT
);`,
}

// New returns a gorm connection with every namespace attached and all tables
// created. The connection is capped to a single pooled conn so the attached
// in-memory databases stay visible across statements.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, schema := range schemas {
		if err := conn.Exec("ATTACH DATABASE ':memory:' AS " + schema).Error; err != nil {
			t.Fatalf("attach %s: %v", schema, err)
		}
	}
	for _, stmt := range ddl {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v\n%s", err, stmt)
		}
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return conn
}
