// Package cache provides the two content-addressed caches of the pipeline:
// transcripts keyed by video id and answers keyed by (video id, exact
// question string). Both guarantee at most one expensive computation per
// key over the lifetime of the cache document.
package cache

import (
	"fmt"

	"github.com/dangtuanvu/vidask/internal/store"
)

// TranscriptRecord is created once per video id on the first successful
// pipeline run and never mutated afterwards.
type TranscriptRecord struct {
	Title            string   `json:"title"`
	Transcript       string   `json:"transcript"`
	TokenCount       int      `json:"tokenCount"`
	SummarizedChunks []string `json:"summarizedChunks,omitempty"`
}

// QAEntry is one question/answer pair. Entries are appended, never edited.
type QAEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// TranscriptCache is the read-through cache of full transcripts.
type TranscriptCache struct {
	store store.Store
}

func NewTranscriptCache(s store.Store) *TranscriptCache {
	return &TranscriptCache{store: s}
}

func (c *TranscriptCache) Get(videoID string) (*TranscriptRecord, bool, error) {
	var rec TranscriptRecord
	found, err := c.store.Get(videoID, &rec)
	if err != nil {
		return nil, false, fmt.Errorf("transcript cache: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return &rec, true, nil
}

func (c *TranscriptCache) Put(videoID string, rec TranscriptRecord) error {
	if err := c.store.Put(videoID, rec); err != nil {
		return fmt.Errorf("transcript cache: %w", err)
	}
	return nil
}

// GetOrCompute returns the stored record for videoID, running compute and
// storing its result only on a miss.
func (c *TranscriptCache) GetOrCompute(videoID string, compute func() (TranscriptRecord, error)) (*TranscriptRecord, error) {
	rec, found, err := c.Get(videoID)
	if err != nil {
		return nil, err
	}
	if found {
		return rec, nil
	}

	computed, err := compute()
	if err != nil {
		return nil, err
	}
	if err := c.Put(videoID, computed); err != nil {
		return nil, err
	}
	return &computed, nil
}

// AnswerCache holds the append-only question/answer history per video.
type AnswerCache struct {
	store store.Store
}

func NewAnswerCache(s store.Store) *AnswerCache {
	return &AnswerCache{store: s}
}

// History returns all stored entries for videoID, oldest first.
func (c *AnswerCache) History(videoID string) ([]QAEntry, error) {
	var entries []QAEntry
	if _, err := c.store.Get(videoID, &entries); err != nil {
		return nil, fmt.Errorf("answer cache: %w", err)
	}
	return entries, nil
}

// Find looks up an answer by exact question-string equality. No
// normalization, by contract: "What?" and "what?" are distinct keys.
func (c *AnswerCache) Find(videoID, question string) (string, bool, error) {
	entries, err := c.History(videoID)
	if err != nil {
		return "", false, err
	}
	for _, e := range entries {
		if e.Question == question {
			return e.Answer, true, nil
		}
	}
	return "", false, nil
}

// Append adds one entry to the video's history, preserving prior entries.
func (c *AnswerCache) Append(videoID, question, answer string) error {
	entries, err := c.History(videoID)
	if err != nil {
		return err
	}
	entries = append(entries, QAEntry{Question: question, Answer: answer})
	if err := c.store.Put(videoID, entries); err != nil {
		return fmt.Errorf("answer cache: %w", err)
	}
	return nil
}

// GetOrCompute returns the stored answer for (videoID, question), running
// compute and appending its result only when no stored entry matches.
func (c *AnswerCache) GetOrCompute(videoID, question string, compute func() (string, error)) (string, error) {
	answer, found, err := c.Find(videoID, question)
	if err != nil {
		return "", err
	}
	if found {
		return answer, nil
	}

	answer, err = compute()
	if err != nil {
		return "", err
	}
	if err := c.Append(videoID, question, answer); err != nil {
		return "", err
	}
	return answer, nil
}
