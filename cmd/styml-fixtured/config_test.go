package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsWhenNoPathGiven(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.DocumentDir != "." {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoadConfigReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \":9090\"\ndocument_dir: \"/srv/docs\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.DocumentDir != "/srv/docs" {
		t.Fatalf("document dir = %q", cfg.DocumentDir)
	}
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
