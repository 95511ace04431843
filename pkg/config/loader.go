package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dialbridge/dialbridge/pkg/debug"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, DIALBRIDGE_CONFIG env, ./config.yaml, /etc/dialbridge/config.yaml)
//  3. Environment variable overrides, legacy names first
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
		debug.Log("config", "config file loaded", "path", filePath)
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. DIALBRIDGE_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/dialbridge/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("DIALBRIDGE_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/dialbridge/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// envMapping binds one config field to its environment variables. The
// first non-empty variable wins, so DIALBRIDGE_ names come first.
type envMapping struct {
	names []string
	apply func(*Config, string)
}

var envMappings = []envMapping{
	{[]string{"DIALBRIDGE_ENGINE_URL", "TENEO_ENGINE_URL"}, func(c *Config, v string) { c.Engine.URL = v }},
	{[]string{"DIALBRIDGE_PORT", "PORT"}, func(c *Config, v string) {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}},
	{[]string{"DIALBRIDGE_LANGUAGE_STT", "LANGUAGE_STT"}, func(c *Config, v string) { c.Voice.STTLanguage = v }},
	{[]string{"DIALBRIDGE_LANGUAGE_TTS", "LANGUAGE_TTS"}, func(c *Config, v string) { c.Voice.TTSVoice = v }},
	{[]string{"DIALBRIDGE_WORKFLOW_WEBHOOK_URL", "TWILIO_WORKFLOW_WEBHOOK_URL"}, func(c *Config, v string) { c.Voice.WorkflowWebhookURL = v }},
	{[]string{"DIALBRIDGE_JOURNAL"}, func(c *Config, v string) { c.Journal.Type = v }},
	{[]string{"DIALBRIDGE_JOURNAL_SIZE"}, func(c *Config, v string) {
		if size, err := strconv.Atoi(v); err == nil {
			c.Journal.MaxSize = size
		}
	}},
	{[]string{"DIALBRIDGE_POSTGRES_DSN"}, func(c *Config, v string) { c.Journal.Postgres.DSN = v }},
}

// applyEnvOverrides maps environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	for _, m := range envMappings {
		for _, name := range m.names {
			if v := os.Getenv(name); v != "" {
				m.apply(cfg, v)
				break
			}
		}
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields when those are empty. File content is whitespace trimmed.
func resolveFileReferences(cfg *Config) error {
	if cfg.Journal.Postgres.DSNFile != "" && cfg.Journal.Postgres.DSN == "" {
		val, err := readSecretFile(cfg.Journal.Postgres.DSNFile)
		if err != nil {
			return fmt.Errorf("journal.postgres.dsn_file: %w", err)
		}
		cfg.Journal.Postgres.DSN = val
	}
	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
