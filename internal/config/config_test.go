package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rawstock")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("SCAN_API_URL", "")
	t.Setenv("PRODUCT_API_URL", "")
	t.Setenv("SCAN_USER_ID", "")
	t.Setenv("SCAN_LOCATION_ID", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Port)
	}
	if cfg.ScanAPIURL == "" || cfg.ProductAPIURL == "" {
		t.Fatal("scan/product URLs must have defaults")
	}
	if cfg.AdminEmail == "" {
		t.Fatal("admin email must have a default")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rawstock")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rawstock")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}

func TestScanURLTrailingSlashTrimmed(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rawstock")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SCAN_API_URL", "http://scan.example.com/")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ScanAPIURL != "http://scan.example.com" {
		t.Fatalf("scan url = %q", cfg.ScanAPIURL)
	}
}
