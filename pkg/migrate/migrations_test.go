package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestCartsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_carts_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS carts",
		"CREATE TABLE IF NOT EXISTS cart_items",
		"ck_carts_one_identity",
		"ux_carts_store_user",
		"WHERE user_id IS NOT NULL",
		"ux_carts_store_session",
		"WHERE session_id IS NOT NULL",
		"ux_cart_items_line",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS cart_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_orders_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_items",
		"ux_orders_number",
		"ON DELETE SET NULL",
		"shipping_address JSONB",
		"DROP TABLE IF EXISTS order_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestProductsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_products_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS product_variants",
		"ck_products_inventory_nonnegative",
		"idx_products_store_status",
		"DROP TABLE IF EXISTS products",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %s found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
