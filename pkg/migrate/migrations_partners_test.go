package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPartnersMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_partners.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no partners migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE SCHEMA IF NOT EXISTS partners",
		"CREATE TABLE IF NOT EXISTS partners.partner_types",
		"CREATE TABLE IF NOT EXISTS partners.partners",
		"CREATE TABLE IF NOT EXISTS partners.partner_contacts",
		"partner_id UUID NOT NULL REFERENCES partners.partners(partner_id) ON DELETE CASCADE",
		"CREATE INDEX IF NOT EXISTS idx_partner_contacts_partner_id",
		"DROP TABLE IF EXISTS partners.partner_types",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
