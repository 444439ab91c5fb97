package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{
					Inbox:       "data/inbox",
					Transcripts: "transcripts",
				},
			},
			wantErr: false,
		},
		{
			name: "missing inbox",
			config: Config{
				Paths: PathsConfig{Transcripts: "transcripts"},
			},
			wantErr: true,
		},
		{
			name:    "missing paths",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "unknown provider",
			config: Config{
				Paths:   PathsConfig{Inbox: "in", Transcripts: "out"},
				Summary: SummaryConfig{Provider: "claude"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Inbox: "in", Transcripts: "out"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Summary.Provider != ProviderGemini {
		t.Errorf("Provider = %v, want %v", cfg.Summary.Provider, ProviderGemini)
	}
	if cfg.Transcript.Width != 100 {
		t.Errorf("Transcript.Width = %v, want %v", cfg.Transcript.Width, 100)
	}
	if cfg.Summary.MinWords != 50 {
		t.Errorf("MinWords = %v, want %v", cfg.Summary.MinWords, 50)
	}
	if cfg.Summary.Threshold != 100 || cfg.Summary.Width != 80 || cfg.Summary.ListWidth != 75 {
		t.Errorf("summary widths = %d/%d/%d, want 100/80/75", cfg.Summary.Threshold, cfg.Summary.Width, cfg.Summary.ListWidth)
	}
	if cfg.Storage.Catalog != filepath.Join("data", "catalog.db") {
		t.Errorf("Storage.Catalog = %v, want %v", cfg.Storage.Catalog, filepath.Join("data", "catalog.db"))
	}
	if cfg.Model() != "gemini-2.5-flash" {
		t.Errorf("Model() = %v, want %v", cfg.Model(), "gemini-2.5-flash")
	}

	cfg.Summary.Provider = ProviderOpenAI
	if cfg.Model() != "gpt-3.5-turbo" {
		t.Errorf("Model() = %v, want %v", cfg.Model(), "gpt-3.5-turbo")
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(envGeminiKeys, "key-a, key-b,")
	t.Setenv(envOpenAIKey, "sk-test")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
paths:
  inbox: "data/inbox"
  transcripts: "transcripts"

logging:
  level: "debug"
  format: "json"

summary:
  provider: "openai"
  min_words: 10

gemini:
  api_keys: ["from-file"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.Inbox != "data/inbox" {
		t.Errorf("Inbox = %v, want %v", cfg.Paths.Inbox, "data/inbox")
	}
	if cfg.Summary.MinWords != 10 {
		t.Errorf("MinWords = %v, want %v", cfg.Summary.MinWords, 10)
	}
	if len(cfg.Gemini.APIKeys) != 2 || cfg.Gemini.APIKeys[1] != "key-b" {
		t.Errorf("APIKeys = %v, want [key-a key-b]", cfg.Gemini.APIKeys)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("OpenAI.APIKey = %v, want %v", cfg.OpenAI.APIKey, "sk-test")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("paths: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should return error for invalid YAML")
	}
}
