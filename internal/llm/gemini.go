package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dangtuanvu/vidask/internal/logger"
)

const answerPrompt = `You are given the transcript of a video. Answer the question using only the transcript.

Transcript:
---
%s
---

Question: %s`

const summarizePrompt = `Summarize the following transcript excerpt. Keep every fact, name and number that appears; drop filler. Answer with the summary only.

---
%s
---`

type implGemini struct {
	apiKeys     []string
	currentKey  int
	model       string
	temperature float32
	logger      logger.Logger
}

// NewGemini creates a Generator that rotates through the supplied Gemini
// API keys on quota errors.
func NewGemini(apiKeys []string, model string, temperature float64, log logger.Logger) Generator {
	return &implGemini{
		apiKeys:     apiKeys,
		model:       model,
		temperature: float32(temperature),
		logger:      log,
	}
}

func (g *implGemini) Answer(ctx context.Context, transcript, question string) (string, error) {
	g.logger.Debug(ctx, "Asking %s: %s", g.model, question)
	return g.generate(ctx, fmt.Sprintf(answerPrompt, transcript, question))
}

func (g *implGemini) Summarize(ctx context.Context, excerpt string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(summarizePrompt, excerpt))
}

// generate sends the prompt to Gemini. Rotates API keys on 429 / quota
// errors.
func (g *implGemini) generate(ctx context.Context, prompt string) (string, error) {
	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		cfg := &genai.GenerateContentConfig{
			Temperature: genai.Ptr(g.temperature),
		}
		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return strings.TrimSpace(text), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
