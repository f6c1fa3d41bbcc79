package pipeline

import (
	"github.com/dangtuanvu/vidask/internal/cache"
	"github.com/dangtuanvu/vidask/internal/config"
	"github.com/dangtuanvu/vidask/internal/llm"
	"github.com/dangtuanvu/vidask/internal/logger"
	"github.com/dangtuanvu/vidask/internal/media"
	"github.com/dangtuanvu/vidask/internal/speech"
	"github.com/dangtuanvu/vidask/internal/splitter"
)

type implPipeline struct {
	cfg         *config.Config
	acquirer    media.Acquirer
	prober      media.Prober
	segmenter   media.Segmenter
	transcriber speech.Transcriber
	generator   llm.Generator
	tokenizer   splitter.Tokenizer // nil disables token counting and summarization
	transcripts *cache.TranscriptCache
	answers     *cache.AnswerCache
	logger      logger.Logger
}

// Deps bundles the collaborators the pipeline sequences.
type Deps struct {
	Acquirer    media.Acquirer
	Prober      media.Prober
	Segmenter   media.Segmenter
	Transcriber speech.Transcriber
	Generator   llm.Generator
	Tokenizer   splitter.Tokenizer
	Transcripts *cache.TranscriptCache
	Answers     *cache.AnswerCache
}

// New creates a new Pipeline instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:         cfg,
		acquirer:    deps.Acquirer,
		prober:      deps.Prober,
		segmenter:   deps.Segmenter,
		transcriber: deps.Transcriber,
		generator:   deps.Generator,
		tokenizer:   deps.Tokenizer,
		transcripts: deps.Transcripts,
		answers:     deps.Answers,
		logger:      log,
	}
}
