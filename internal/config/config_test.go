package config

import (
	"errors"
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "zero value fills defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "explicit values kept",
			config: Config{
				OpenAI: OpenAIConfig{ChatModel: "gpt-4o"},
				LLM:    LLMConfig{Provider: "gemini"},
			},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: Config{
				LLM: LLMConfig{Provider: "claude"},
			},
			wantErr: true,
		},
		{
			name: "negative segment ceiling",
			config: Config{
				Media: MediaConfig{MaxSegmentBytes: -1},
			},
			wantErr: true,
		},
		{
			name: "negative token threshold",
			config: Config{
				Summarize: SummarizeConfig{TokenThreshold: -5},
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
	cfg := Default()

	if cfg.OpenAI.WhisperModel != "whisper-1" {
		t.Errorf("WhisperModel = %q, want whisper-1", cfg.OpenAI.WhisperModel)
	}
	if cfg.OpenAI.ChatModel != "gpt-4" {
		t.Errorf("ChatModel = %q, want gpt-4", cfg.OpenAI.ChatModel)
	}
	if cfg.OpenAI.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", cfg.OpenAI.Temperature)
	}
	if cfg.Media.MaxSegmentBytes != 20*1024*1024 {
		t.Errorf("MaxSegmentBytes = %d, want 20MiB", cfg.Media.MaxSegmentBytes)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.LLM.Provider)
	}
	if cfg.Cache.TranscriptPath != "data/transcriptions.json" {
		t.Errorf("TranscriptPath = %q", cfg.Cache.TranscriptPath)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
openai:
  whisper_model: "whisper-1"
  chat_model: "gpt-4"
  temperature: 0.3

llm:
  provider: "openai"

media:
  downloader_path: "/usr/local/bin/yt-dlp"
  work_dir: "data/tmp"
  max_segment_bytes: 20971520

cache:
  transcript_path: "data/transcriptions.json"
  answer_path: "data/qa.json"

summarize:
  enabled: true
  token_threshold: 10000
  max_tokens_per_chunk: 3000

logging:
  level: "info"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Media.DownloaderPath != "/usr/local/bin/yt-dlp" {
		t.Errorf("DownloaderPath = %v, want /usr/local/bin/yt-dlp", cfg.Media.DownloaderPath)
	}

	if !cfg.Summarize.Enabled {
		t.Error("Summarize.Enabled = false, want true")
	}

	if cfg.Media.MaxSegmentBytes != 20971520 {
		t.Errorf("MaxSegmentBytes = %v, want 20971520", cfg.Media.MaxSegmentBytes)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEYS", "")

	cfg := Default()
	creds, err := LoadCredentials(cfg)
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if creds.OpenAIKey != "sk-test" {
		t.Errorf("OpenAIKey = %q, want sk-test", creds.OpenAIKey)
	}
}

func TestLoadCredentialsMissingOpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := LoadCredentials(Default())
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("error = %v, want ErrMissingCredential", err)
	}
}

func TestLoadCredentialsGeminiProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEYS", "key-a, key-b")

	cfg := Default()
	cfg.LLM.Provider = "gemini"

	creds, err := LoadCredentials(cfg)
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if len(creds.GeminiKeys) != 2 {
		t.Fatalf("GeminiKeys = %v, want 2 keys", creds.GeminiKeys)
	}
	if creds.GeminiKeys[1] != "key-b" {
		t.Errorf("GeminiKeys[1] = %q, want key-b", creds.GeminiKeys[1])
	}

	t.Setenv("GEMINI_API_KEYS", "")
	if _, err := LoadCredentials(cfg); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("error = %v, want ErrMissingCredential", err)
	}
}
