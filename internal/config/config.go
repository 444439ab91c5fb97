package config

import (
	"fmt"
	"path/filepath"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Transcript  TranscriptConfig  `yaml:"transcript"`
	Summary     SummaryConfig     `yaml:"summary"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
}

type PathsConfig struct {
	Inbox       string `yaml:"inbox"`
	Videos      string `yaml:"videos"`
	Transcripts string `yaml:"transcripts"`
	Summaries   string `yaml:"summaries"`
	Archived    string `yaml:"archived"`
	Data        string `yaml:"data"`
	Digest      string `yaml:"digest"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type TranscriptConfig struct {
	Width         int  `yaml:"width"`
	ParagraphSize int  `yaml:"paragraph_size"`
	FlatWindow    int  `yaml:"flat_window"`
	Docx          bool `yaml:"docx"`
}

type SummaryConfig struct {
	Provider          string  `yaml:"provider"`
	MinWords          int     `yaml:"min_words"`
	Overwrite         bool    `yaml:"overwrite"`
	RequestsPerMinute int     `yaml:"requests_per_minute"`
	MaxTokens         int     `yaml:"max_tokens"`
	Temperature       float64 `yaml:"temperature"`
	Threshold         int     `yaml:"threshold"`
	Width             int     `yaml:"width"`
	ListWidth         int     `yaml:"list_width"`
	HeaderLimit       int     `yaml:"header_limit"`
	Docx              bool    `yaml:"docx"`
	// AutoSummarize runs the summarizer right after a transcript is built.
	AutoSummarize bool `yaml:"auto_summarize"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type FetchConfig struct {
	Binary    string `yaml:"binary"`
	Language  string `yaml:"language"`
	MaxVideos int    `yaml:"max_videos"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Token          string   `yaml:"token"`
}

type StorageConfig struct {
	Catalog string `yaml:"catalog"`
	Cache   string `yaml:"cache"`
	Index   string `yaml:"index"`
}

func (c *Config) Validate() error {
	if c.Paths.Inbox == "" {
		return fmt.Errorf("paths.inbox is required")
	}
	if c.Paths.Transcripts == "" {
		return fmt.Errorf("paths.transcripts is required")
	}

	switch c.Summary.Provider {
	case "":
		c.Summary.Provider = ProviderGemini
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("summary.provider %q is not supported", c.Summary.Provider)
	}

	if c.Paths.Videos == "" {
		c.Paths.Videos = "videos"
	}
	if c.Paths.Summaries == "" {
		c.Paths.Summaries = "summaries"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Data == "" {
		c.Paths.Data = "data"
	}
	if c.Paths.Digest == "" {
		c.Paths.Digest = "web/data/summaries.json"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	if c.Transcript.Width == 0 {
		c.Transcript.Width = 100
	}
	if c.Transcript.ParagraphSize == 0 {
		c.Transcript.ParagraphSize = 4
	}
	if c.Transcript.FlatWindow == 0 {
		c.Transcript.FlatWindow = 5
	}

	if c.Summary.MinWords == 0 {
		c.Summary.MinWords = 50
	}
	if c.Summary.RequestsPerMinute == 0 {
		c.Summary.RequestsPerMinute = 10
	}
	if c.Summary.MaxTokens == 0 {
		c.Summary.MaxTokens = 500
	}
	if c.Summary.Temperature == 0 {
		c.Summary.Temperature = 0.3
	}
	if c.Summary.Threshold == 0 {
		c.Summary.Threshold = 100
	}
	if c.Summary.Width == 0 {
		c.Summary.Width = 80
	}
	if c.Summary.ListWidth == 0 {
		c.Summary.ListWidth = 75
	}
	if c.Summary.HeaderLimit == 0 {
		c.Summary.HeaderLimit = 120
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-3.5-turbo"
	}

	if c.Fetch.Binary == "" {
		c.Fetch.Binary = "yt-dlp"
	}
	if c.Fetch.Language == "" {
		c.Fetch.Language = "en"
	}
	if c.Fetch.MaxVideos == 0 {
		c.Fetch.MaxVideos = 20
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	if c.Storage.Catalog == "" {
		c.Storage.Catalog = filepath.Join(c.Paths.Data, "catalog.db")
	}
	if c.Storage.Cache == "" {
		c.Storage.Cache = filepath.Join(c.Paths.Data, "cache")
	}
	if c.Storage.Index == "" {
		c.Storage.Index = filepath.Join(c.Paths.Data, "index.bleve")
	}

	return nil
}

// Model returns the model name of the configured summary provider.
func (c *Config) Model() string {
	if c.Summary.Provider == ProviderOpenAI {
		return c.OpenAI.Model
	}
	return c.Gemini.Model
}

// Directories lists the directories the pipeline writes into.
func (c *Config) Directories() []string {
	return []string{
		c.Paths.Inbox,
		c.Paths.Videos,
		c.Paths.Transcripts,
		c.Paths.Summaries,
		c.Paths.Archived,
		c.Paths.Data,
		filepath.Dir(c.Paths.Digest),
	}
}
