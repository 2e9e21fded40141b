package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the quill configuration file (~/.config/quill/config.yaml).
// All fields are pointers so we can distinguish "not set" from zero values.
type Config struct {
	// Provider
	HubURL   string `yaml:"hub_url"`
	HubToken string `yaml:"hub_token"`
	Device   string `yaml:"device"`

	// Models
	RewriteModel string `yaml:"rewrite_model"`
	RewriteEOS   *int64 `yaml:"rewrite_eos"`
	SuggestModel string `yaml:"suggest_model"`
	SuggestEOS   *int64 `yaml:"suggest_eos"`
	LowMemory    *bool  `yaml:"low_memory"`

	// Generation defaults
	Task      string `yaml:"task"`
	Decoding  string `yaml:"decoding"`
	MaxLength *int64 `yaml:"max_length"`
	Count     *int64 `yaml:"count"`
	TokensPer *int64 `yaml:"tokens_per"`

	// Output
	StreamMode string `yaml:"stream_mode"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "config.yaml")
}

// applyHubConfig applies provider and model defaults from the config file
// when the corresponding CLI flag was not explicitly set.
func applyHubConfig(c *cli.Command, cfg Config) {
	if cfg.HubURL != "" && !c.IsSet("hub-url") {
		hubURL = cfg.HubURL
	}
	if cfg.HubToken != "" && !c.IsSet("hub-token") {
		hubToken = cfg.HubToken
	}
	if cfg.Device != "" && !c.IsSet("device") && !c.IsSet("d") {
		deviceName = cfg.Device
	}
	if cfg.RewriteModel != "" && !c.IsSet("rewrite-model") {
		rewriteModel = cfg.RewriteModel
	}
	if cfg.RewriteEOS != nil && !c.IsSet("rewrite-eos") {
		rewriteEOS = *cfg.RewriteEOS
	}
	if cfg.SuggestModel != "" && !c.IsSet("suggest-model") {
		suggestModel = cfg.SuggestModel
	}
	if cfg.SuggestEOS != nil && !c.IsSet("suggest-eos") {
		suggestEOS = *cfg.SuggestEOS
	}
	if cfg.LowMemory != nil && !c.IsSet("low-memory") {
		lowMemory = *cfg.LowMemory
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyRewriteConfig applies config file defaults to rewrite command variables.
func applyRewriteConfig(c *cli.Command, cfg Config, task, decoding *string, maxLength *int64, streamMode *string) {
	if cfg.Task != "" && !c.IsSet("task") {
		*task = cfg.Task
	}
	if cfg.Decoding != "" && !c.IsSet("decoding") {
		*decoding = cfg.Decoding
	}
	if cfg.MaxLength != nil && !c.IsSet("max-length") {
		*maxLength = *cfg.MaxLength
	}
	if cfg.StreamMode != "" && !c.IsSet("stream-mode") {
		*streamMode = cfg.StreamMode
	}
}

// applySuggestConfig applies config file defaults to suggest command variables.
func applySuggestConfig(c *cli.Command, cfg Config, decoding *string, count, tokensPer *int64) {
	if cfg.Decoding != "" && !c.IsSet("decoding") {
		*decoding = cfg.Decoding
	}
	if cfg.Count != nil && !c.IsSet("count") {
		*count = *cfg.Count
	}
	if cfg.TokensPer != nil && !c.IsSet("tokens-per") {
		*tokensPer = *cfg.TokensPer
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
