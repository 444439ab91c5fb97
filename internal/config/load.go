package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	envGeminiKeys = "GEMINI_API_KEYS"
	envGeminiKey  = "GEMINI_API_KEY"
	envOpenAIKey  = "OPENAI_API_KEY"
	envAPIToken   = "TRANSCRIPT_API_TOKEN"
)

// Load reads a YAML config file, applies secrets from the environment (and a
// .env file next to the working directory, if any) and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envGeminiKeys); v != "" {
		c.Gemini.APIKeys = splitList(v)
	} else if v := os.Getenv(envGeminiKey); v != "" && len(c.Gemini.APIKeys) == 0 {
		c.Gemini.APIKeys = []string{v}
	}
	if v := os.Getenv(envOpenAIKey); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(envAPIToken); v != "" {
		c.Server.Token = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
