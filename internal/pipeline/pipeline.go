package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dangtuanvu/vidask/internal/cache"
	"github.com/dangtuanvu/vidask/internal/media"
	"github.com/dangtuanvu/vidask/internal/splitter"
)

// Ask sequences the whole run: transcript resolution, then answer
// resolution. Each resolution short-circuits on a cache hit, so a repeat
// invocation with the same video and question touches no collaborator.
func (p *implPipeline) Ask(ctx context.Context, sourceURL, question string) (*Result, error) {
	videoID, err := media.VideoID(sourceURL)
	if err != nil {
		return nil, err
	}

	rec, found, err := p.transcripts.Get(videoID)
	if err != nil {
		return nil, fmt.Errorf("resolve transcript: %w", err)
	}
	if found {
		p.logger.Info(ctx, "Transcript found in cache for %s", videoID)
	} else {
		computed, err := p.buildTranscript(ctx, videoID, sourceURL)
		if err != nil {
			return nil, err
		}
		if err := p.transcripts.Put(videoID, *computed); err != nil {
			return nil, fmt.Errorf("persist transcript: %w", err)
		}
		rec = computed
	}

	answer, cached, err := p.answers.Find(videoID, question)
	if err != nil {
		return nil, fmt.Errorf("resolve answer: %w", err)
	}
	if !cached {
		p.logger.Info(ctx, "Generating answer: %s", question)
		answer, err = p.generator.Answer(ctx, effectiveTranscript(rec), question)
		if err != nil {
			return nil, fmt.Errorf("generate answer: %w", err)
		}
		if err := p.answers.Append(videoID, question, answer); err != nil {
			return nil, fmt.Errorf("persist answer: %w", err)
		}
	} else {
		p.logger.Info(ctx, "Answer found in cache for %s", videoID)
	}

	return &Result{
		VideoID:         videoID,
		Title:           rec.Title,
		Answer:          answer,
		AnswerFromCache: cached,
	}, nil
}

// TranscribeLocal feeds a local media file through the transcript
// sub-pipeline, skipping acquisition. The cache key is the file's base
// name without extension.
func (p *implPipeline) TranscribeLocal(ctx context.Context, path string) (*cache.TranscriptRecord, error) {
	base := filepath.Base(path)
	videoID := strings.TrimSuffix(base, filepath.Ext(base))

	return p.transcripts.GetOrCompute(videoID, func() (cache.TranscriptRecord, error) {
		rec, err := p.transcribeAsset(ctx, videoID, base, path)
		if err != nil {
			return cache.TranscriptRecord{}, err
		}
		return *rec, nil
	})
}

// buildTranscript runs AcquireMedia through MaybeSummarize for a remote
// source.
func (p *implPipeline) buildTranscript(ctx context.Context, videoID, sourceURL string) (*cache.TranscriptRecord, error) {
	if err := os.MkdirAll(p.cfg.Media.WorkDir, 0755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}

	audioPath := media.AudioPath(p.cfg.Media.WorkDir, videoID)
	title, err := p.acquirer.Acquire(ctx, sourceURL, audioPath)
	if err != nil {
		return nil, fmt.Errorf("acquire media: %w", err)
	}

	return p.transcribeAsset(ctx, videoID, title, audioPath)
}

// transcribeAsset probes, splits, transcribes and merges one local audio
// asset, then optionally summarizes the merged transcript.
func (p *implPipeline) transcribeAsset(ctx context.Context, videoID, title, audioPath string) (*cache.TranscriptRecord, error) {
	probe, err := p.prober.Probe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("probe media: %w", err)
	}

	segments, err := splitter.SplitMedia(probe, p.cfg.Media.MaxSegmentBytes)
	if err != nil {
		return nil, fmt.Errorf("split media: %w", err)
	}
	p.logger.Info(ctx, "Splitting %s into %d segment(s)", videoID, len(segments))

	// Strictly sequential, in index order: cut, read, transcribe, delete.
	// The merge below depends on this order.
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		segPath := media.SegmentPath(p.cfg.Media.WorkDir, videoID, seg.Index)
		if err := p.segmenter.Cut(ctx, audioPath, seg, segPath); err != nil {
			return nil, fmt.Errorf("cut segment %d: %w", seg.Index, err)
		}

		audio, err := os.ReadFile(segPath)
		if err != nil {
			return nil, fmt.Errorf("read segment %d: %w", seg.Index, err)
		}

		p.logger.Info(ctx, "Uploading segment %d of %d...", seg.Index, len(segments))
		text, err := p.transcriber.Transcribe(ctx, audio, filepath.Base(segPath))
		if err != nil {
			return nil, fmt.Errorf("transcribe segment %d: %w", seg.Index, err)
		}
		texts = append(texts, text)

		// Transient file is done once its transcription succeeded
		if err := os.Remove(segPath); err != nil {
			p.logger.Warn(ctx, "Failed to remove segment file %s: %v", segPath, err)
		}
	}

	transcript := strings.Join(texts, " ")
	p.logger.Info(ctx, "All %d segment(s) transcribed", len(segments))

	rec := &cache.TranscriptRecord{
		Title:      title,
		Transcript: transcript,
	}

	if p.tokenizer != nil {
		rec.TokenCount, err = splitter.CountTokens(p.tokenizer, transcript)
		if err != nil {
			return nil, fmt.Errorf("count tokens: %w", err)
		}
	}

	if p.shouldSummarize(rec.TokenCount) {
		rec.SummarizedChunks, err = p.summarize(ctx, transcript)
		if err != nil {
			return nil, fmt.Errorf("summarize transcript: %w", err)
		}
	}

	return rec, nil
}

func (p *implPipeline) shouldSummarize(tokenCount int) bool {
	return p.cfg.Summarize.Enabled && p.tokenizer != nil && tokenCount > p.cfg.Summarize.TokenThreshold
}

// summarize passes every chunk through the generator sequentially,
// preserving chunk order.
func (p *implPipeline) summarize(ctx context.Context, transcript string) ([]string, error) {
	chunks, err := splitter.SplitText(p.tokenizer, transcript, p.cfg.Summarize.MaxTokensPerChunk)
	if err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "Transcript exceeds %d tokens, summarizing %d chunk(s)", p.cfg.Summarize.TokenThreshold, len(chunks))

	summaries := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		p.logger.Info(ctx, "Summarizing chunk %d of %d...", chunk.Index, len(chunks))
		summary, err := p.generator.Summarize(ctx, chunk.Text)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunk.Index, err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// effectiveTranscript is what the answer generator sees: the summarized
// form when one exists, the raw transcript otherwise.
func effectiveTranscript(rec *cache.TranscriptRecord) string {
	if len(rec.SummarizedChunks) > 0 {
		return strings.Join(rec.SummarizedChunks, " ")
	}
	return rec.Transcript
}
