package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config is the fixture server's own startup configuration, loaded from
// a small YAML file unrelated to the styml format the server exists to
// exercise.
type config struct {
	ListenAddr  string `yaml:"listen_addr"`
	DocumentDir string `yaml:"document_dir"`
}

func defaultConfig() config {
	return config{ListenAddr: ":8080", DocumentDir: "."}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
