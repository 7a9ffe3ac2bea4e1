package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasmedrano/tourmarket-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestCartMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_carts.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS cart_items",
		"FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
		"price numeric(10,2) NOT NULL",
		"DROP TABLE IF EXISTS cart_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestQRCodeMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_qr_codes.sql")

	checks := []string{
		"CONSTRAINT qr_codes_product_id_key UNIQUE (product_id)",
		"FOREIGN KEY (qr_code_id) REFERENCES qr_codes(id) ON DELETE CASCADE",
		"CHECK (scan_count >= 0)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRegionMigrationEnforcesSlugUniqueness(t *testing.T) {
	content := readMigration(t, "*_create_identity_and_regions.sql")

	if !strings.Contains(content, "CONSTRAINT regions_slug_key UNIQUE (slug)") {
		t.Error("missing regions slug unique constraint")
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
