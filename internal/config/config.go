package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingCredential reports a required API key absent from the environment.
var ErrMissingCredential = errors.New("missing credential")

type Config struct {
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	LLM       LLMConfig       `yaml:"llm"`
	Media     MediaConfig     `yaml:"media"`
	Cache     CacheConfig     `yaml:"cache"`
	Summarize SummarizeConfig `yaml:"summarize"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type OpenAIConfig struct {
	WhisperModel string  `yaml:"whisper_model"`
	ChatModel    string  `yaml:"chat_model"`
	BaseURL      string  `yaml:"base_url"`
	Temperature  float64 `yaml:"temperature"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

// LLMConfig selects which provider answers questions and summarizes chunks.
type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai" or "gemini"
}

type MediaConfig struct {
	DownloaderPath  string `yaml:"downloader_path"`
	WorkDir         string `yaml:"work_dir"`
	MaxSegmentBytes int64  `yaml:"max_segment_bytes"`
}

type CacheConfig struct {
	TranscriptPath string `yaml:"transcript_path"`
	AnswerPath     string `yaml:"answer_path"`
}

type SummarizeConfig struct {
	Enabled           bool `yaml:"enabled"`
	TokenThreshold    int  `yaml:"token_threshold"`
	MaxTokensPerChunk int  `yaml:"max_tokens_per_chunk"`
}

type TokenizerConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Credentials are supplied through the process environment, never the
// config file.
type Credentials struct {
	OpenAIKey  string
	GeminiKeys []string
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	// Validate cannot fail on the zero value, it only fills defaults
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "", "openai", "gemini":
	default:
		return fmt.Errorf("llm.provider must be \"openai\" or \"gemini\", got %q", c.LLM.Provider)
	}
	if c.Media.MaxSegmentBytes < 0 {
		return fmt.Errorf("media.max_segment_bytes must be positive")
	}
	if c.Summarize.TokenThreshold < 0 || c.Summarize.MaxTokensPerChunk < 0 {
		return fmt.Errorf("summarize thresholds must be positive")
	}

	if c.OpenAI.WhisperModel == "" {
		c.OpenAI.WhisperModel = "whisper-1"
	}
	if c.OpenAI.ChatModel == "" {
		c.OpenAI.ChatModel = "gpt-4"
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAI.Temperature == 0 {
		c.OpenAI.Temperature = 0.3
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.Media.DownloaderPath == "" {
		c.Media.DownloaderPath = "yt-dlp"
	}
	if c.Media.WorkDir == "" {
		c.Media.WorkDir = "data/tmp"
	}
	if c.Media.MaxSegmentBytes == 0 {
		c.Media.MaxSegmentBytes = 20 * 1024 * 1024
	}
	if c.Cache.TranscriptPath == "" {
		c.Cache.TranscriptPath = "data/transcriptions.json"
	}
	if c.Cache.AnswerPath == "" {
		c.Cache.AnswerPath = "data/qa.json"
	}
	if c.Summarize.TokenThreshold == 0 {
		c.Summarize.TokenThreshold = 10000
	}
	if c.Summarize.MaxTokensPerChunk == 0 {
		c.Summarize.MaxTokensPerChunk = 3000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// LoadCredentials reads API keys from the environment. The OpenAI key is
// always required (transcription runs through Whisper regardless of the
// answer provider); Gemini keys are required only when that provider is
// selected.
func LoadCredentials(cfg *Config) (*Credentials, error) {
	creds := &Credentials{
		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
	}

	if raw := os.Getenv("GEMINI_API_KEYS"); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				creds.GeminiKeys = append(creds.GeminiKeys, k)
			}
		}
	}

	if creds.OpenAIKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingCredential)
	}
	if cfg.LLM.Provider == "gemini" && len(creds.GeminiKeys) == 0 {
		return nil, fmt.Errorf("%w: GEMINI_API_KEYS is not set", ErrMissingCredential)
	}

	return creds, nil
}
