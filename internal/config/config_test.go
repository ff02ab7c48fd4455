package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Limits.MaxDailyConnections != 50 {
		t.Errorf("max daily connections: got %d, want 50", cfg.Limits.MaxDailyConnections)
	}
	if !cfg.Browser.Headless {
		t.Error("headless should default to true")
	}
	if cfg.Retry.Attempts != 3 || cfg.Retry.Backoff != 2.0 {
		t.Errorf("retry defaults: got %d/%v", cfg.Retry.Attempts, cfg.Retry.Backoff)
	}
	if cfg.FollowUp.Days != 5 {
		t.Errorf("follow_up.days: got %d, want 5", cfg.FollowUp.Days)
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
limits:
  max_daily_connections: 10
search:
  titles: ["Data Scientist"]
  locations: ["Berlin"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MAX_DAILY_REQUESTS", "7")
	t.Setenv("HEADLESS", "false")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Limits.MaxDailyConnections != 7 {
		t.Errorf("env should win over yaml: got %d", cfg.Limits.MaxDailyConnections)
	}
	if cfg.Browser.Headless {
		t.Error("HEADLESS=false should disable headless")
	}
	if got := cfg.Queries(); !reflect.DeepEqual(got, []string{"Data Scientist Berlin"}) {
		t.Errorf("queries: got %v", got)
	}
}

func TestQueriesCartesianProduct(t *testing.T) {
	var cfg Config
	cfg.Search.Titles = []string{"Software Engineer", "Product Manager"}
	cfg.Search.Locations = []string{"India", "Canada"}
	want := []string{
		"Software Engineer India",
		"Software Engineer Canada",
		"Product Manager India",
		"Product Manager Canada",
	}
	if got := cfg.Queries(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestQueriesDefault(t *testing.T) {
	var cfg Config
	got := cfg.Queries()
	if len(got) != 1 || got[0] != "Software Engineer United States" {
		t.Errorf("got %v, want one generic default query", got)
	}
}

func TestValidateScheduleTime(t *testing.T) {
	cfg := defaultConfig()
	cfg.Schedule.At = "25:99"
	if err := validate(&cfg); err == nil {
		t.Fatal("expected invalid schedule time to fail validation")
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("LINKEDIN_EMAIL", "me@example.com")
	t.Setenv("LINKEDIN_PASSWORD", "hunter2")
	var cfg Config
	email, pass, err := cfg.Credentials()
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if email != "me@example.com" || pass != "hunter2" {
		t.Errorf("got %q/%q", email, pass)
	}
	t.Setenv("LINKEDIN_PASSWORD", "")
	if _, _, err := cfg.Credentials(); err == nil {
		t.Fatal("expected missing password to error")
	}
}
