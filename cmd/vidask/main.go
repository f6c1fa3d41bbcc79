package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dangtuanvu/vidask/internal/cache"
	"github.com/dangtuanvu/vidask/internal/config"
	"github.com/dangtuanvu/vidask/internal/llm"
	"github.com/dangtuanvu/vidask/internal/logger"
	"github.com/dangtuanvu/vidask/internal/media"
	"github.com/dangtuanvu/vidask/internal/openai"
	"github.com/dangtuanvu/vidask/internal/pipeline"
	"github.com/dangtuanvu/vidask/internal/report"
	"github.com/dangtuanvu/vidask/internal/speech"
	"github.com/dangtuanvu/vidask/internal/splitter"
	"github.com/dangtuanvu/vidask/internal/store"
	"github.com/dangtuanvu/vidask/internal/tokenize"
	"github.com/dangtuanvu/vidask/internal/watcher"
	"github.com/dangtuanvu/vidask/pkg/executor"
)

const defaultQuestion = "Please summarize the video"

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "", "path to config file (optional)")
		watchDir   = flag.String("watch", "", "watch a directory for media files instead of asking")
		exportID   = flag.String("export", "", "export a cached transcript and its Q&A history to docx")
		exportOut  = flag.String("o", "report.docx", "output path for -export")
		watchJobs  = flag.Int("jobs", 2, "max concurrent transcriptions in watch mode")
	)
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	ctx := context.Background()

	transcripts := cache.NewTranscriptCache(store.NewFile(cfg.Cache.TranscriptPath))
	answers := cache.NewAnswerCache(store.NewFile(cfg.Cache.AnswerPath))

	// Export reads only the caches; no credentials, no collaborators
	if *exportID != "" {
		if err := runExport(*exportID, *exportOut, transcripts, answers); err != nil {
			log.Error(ctx, "Export failed: %v", err)
			os.Exit(1)
		}
		fmt.Println(*exportOut)
		return
	}

	creds, err := config.LoadCredentials(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p, err := buildPipeline(cfg, creds, transcripts, answers, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}

	if *watchDir != "" {
		if err := runWatch(ctx, *watchDir, *watchJobs, p, log); err != nil && err != context.Canceled {
			log.Error(ctx, "Watch failed: %v", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}
	sourceURL := args[0]
	question := defaultQuestion
	if len(args) > 1 {
		question = args[1]
	}

	result, err := p.Ask(ctx, sourceURL, question)
	if err != nil {
		log.Error(ctx, "Run failed: %v", err)
		os.Exit(1)
	}

	if result.AnswerFromCache {
		log.Info(ctx, "Existing answer for %q (%s)", result.Title, result.VideoID)
	} else {
		log.Info(ctx, "Generated answer for %q (%s)", result.Title, result.VideoID)
	}
	fmt.Println(result.Answer)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  vidask [flags] <source-url> [question]
  vidask -watch <dir>
  vidask -export <videoId> [-o report.docx]

Flags:
`)
	flag.PrintDefaults()
}

// loadConfig uses an explicit config path, falls back to config.yaml if
// one exists, and otherwise runs on defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return config.Load("config.yaml")
	}
	return config.Default(), nil
}

func buildPipeline(cfg *config.Config, creds *config.Credentials, transcripts *cache.TranscriptCache, answers *cache.AnswerCache, log logger.Logger) (pipeline.Pipeline, error) {
	exec := executor.New()
	client := openai.NewClient(creds.OpenAIKey, cfg.OpenAI.BaseURL)

	var generator llm.Generator
	if cfg.LLM.Provider == "gemini" {
		generator = llm.NewGemini(creds.GeminiKeys, cfg.Gemini.Model, cfg.OpenAI.Temperature, log)
	} else {
		generator = llm.NewOpenAI(client, cfg.OpenAI.ChatModel, cfg.OpenAI.Temperature, log)
	}

	var tok splitter.Tokenizer
	if cfg.Tokenizer.Path != "" {
		loaded, err := tokenize.Load(cfg.Tokenizer.Path)
		if err != nil {
			return nil, err
		}
		tok = loaded
	}

	return pipeline.New(cfg, pipeline.Deps{
		Acquirer:    media.NewDownloader(cfg.Media.DownloaderPath, exec, log),
		Prober:      media.NewProber(log),
		Segmenter:   media.NewSegmenter(log),
		Transcriber: speech.NewWhisper(client, cfg.OpenAI.WhisperModel, log),
		Generator:   generator,
		Tokenizer:   tok,
		Transcripts: transcripts,
		Answers:     answers,
	}, log), nil
}

func runExport(videoID, outPath string, transcripts *cache.TranscriptCache, answers *cache.AnswerCache) error {
	rec, found, err := transcripts.Get(videoID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no transcript cached for %q", videoID)
	}

	history, err := answers.History(videoID)
	if err != nil {
		return err
	}

	return report.Write(videoID, rec, history, outPath)
}

func runWatch(ctx context.Context, dir string, jobs int, p pipeline.Pipeline, log logger.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create watch dir: %w", err)
	}

	handler := func(ctx context.Context, path string) error {
		rec, err := p.TranscribeLocal(ctx, path)
		if err != nil {
			return err
		}
		log.Info(ctx, "Transcribed %s (%d tokens)", rec.Title, rec.TokenCount)
		return nil
	}

	w, err := watcher.New(dir, handler, log, jobs)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Watch mode ready. Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
		cancel()
		return nil
	case err := <-errChan:
		return err
	}
}
