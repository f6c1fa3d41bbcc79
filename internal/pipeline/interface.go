package pipeline

import (
	"context"

	"github.com/dangtuanvu/vidask/internal/cache"
)

// Result is the outcome of one ask invocation.
type Result struct {
	VideoID         string
	Title           string
	Answer          string
	AnswerFromCache bool
}

// Pipeline resolves a source reference and a question into an answer,
// reusing cached transcripts and answers across runs.
type Pipeline interface {
	// Ask runs the full pipeline for a source URL.
	Ask(ctx context.Context, sourceURL, question string) (*Result, error)
	// TranscribeLocal runs the transcript sub-pipeline for a local media
	// file, keyed by the file's base name. Used by watch mode.
	TranscribeLocal(ctx context.Context, path string) (*cache.TranscriptRecord, error)
}
