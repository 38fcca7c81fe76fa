package config

import (
	"os"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", cfg.Server.Addr)
	}
	if cfg.Store.Path != "data/taskboard.json" {
		t.Fatalf("unexpected store path: %q", cfg.Store.Path)
	}
	if cfg.Backup.Dir != "data/backups" || cfg.Backup.Retention != 7 {
		t.Fatalf("unexpected backup config: %+v", cfg.Backup)
	}
	if cfg.Debug {
		t.Fatal("expected debug off by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TASKBOARD_SERVER_ADDR", ":9090")
	t.Setenv("TASKBOARD_STORE_PATH", "/tmp/other.json")
	t.Setenv("TASKBOARD_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("expected env addr, got %q", cfg.Server.Addr)
	}
	if cfg.Store.Path != "/tmp/other.json" {
		t.Fatalf("expected env store path, got %q", cfg.Store.Path)
	}
	if !cfg.Debug {
		t.Fatal("expected debug on")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := "server:\n  addr: \":7070\"\nbackup:\n  retention: 3\n"
	if err := os.WriteFile("config.yaml", []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("expected file addr, got %q", cfg.Server.Addr)
	}
	if cfg.Backup.Retention != 3 {
		t.Fatalf("expected file retention, got %d", cfg.Backup.Retention)
	}
}
