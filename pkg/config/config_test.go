package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Storage.DataPath != filepath.Join("data", "tenders.json") {
		t.Errorf("unexpected default data path %q", cfg.Storage.DataPath)
	}
	if cfg.Operator != "Tender Desk" {
		t.Errorf("unexpected default operator %q", cfg.Operator)
	}
	if cfg.UI.DefaultStageFilter != "All" {
		t.Errorf("unexpected default stage filter %q", cfg.UI.DefaultStageFilter)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Operator != "Tender Desk" {
		t.Errorf("expected default config, got operator %q", cfg.Operator)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
storage:
  data_path: /srv/tm/tenders.json
  attach_dir: /srv/tm/attachments

operator: Bid Team

ui:
  default_stage_filter: Proposal
  accessible: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Storage.DataPath != "/srv/tm/tenders.json" {
		t.Errorf("data path = %q", cfg.Storage.DataPath)
	}
	if cfg.Operator != "Bid Team" {
		t.Errorf("operator = %q", cfg.Operator)
	}
	if cfg.UI.DefaultStageFilter != "Proposal" {
		t.Errorf("stage filter = %q", cfg.UI.DefaultStageFilter)
	}
	if !cfg.UI.Accessible {
		t.Error("accessible flag not loaded")
	}
}

func TestLoadFrom_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error for malformed config")
	}
}

func TestLoadFrom_EmptyFieldsFallBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("operator: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Operator != "Tender Desk" {
		t.Errorf("empty operator should fall back to default, got %q", cfg.Operator)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Operator = "Bid Team"
	cfg.UI.DefaultStageFilter = "Negotiation"

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Operator != "Bid Team" || loaded.UI.DefaultStageFilter != "Negotiation" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/tenders.json"); got != filepath.Join(home, "tenders.json") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path mangled: %q", got)
	}
}
