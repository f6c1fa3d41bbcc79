package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dangtuanvu/vidask/internal/logger"
	"github.com/dangtuanvu/vidask/internal/openai"
)

const summarizeInstruction = "You summarize transcript excerpts. Keep every fact, name and number that appears; drop filler. Answer with the summary only."

type implOpenAI struct {
	client      *openai.Client
	model       string
	temperature float64
	logger      logger.Logger
}

// NewOpenAI creates a Generator backed by the chat completions endpoint.
func NewOpenAI(client *openai.Client, model string, temperature float64, log logger.Logger) Generator {
	return &implOpenAI{
		client:      client,
		model:       model,
		temperature: temperature,
		logger:      log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *implOpenAI) Answer(ctx context.Context, transcript, question string) (string, error) {
	g.logger.Debug(ctx, "Asking %s: %s", g.model, question)

	return g.complete(ctx, []chatMessage{
		{Role: "system", Content: "Transcript: " + transcript},
		{Role: "user", Content: question},
	})
}

func (g *implOpenAI) Summarize(ctx context.Context, excerpt string) (string, error) {
	return g.complete(ctx, []chatMessage{
		{Role: "system", Content: summarizeInstruction},
		{Role: "user", Content: excerpt},
	})
}

func (g *implOpenAI) complete(ctx context.Context, messages []chatMessage) (string, error) {
	req := chatRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages:    messages,
	}

	var resp chatResponse
	if err := g.client.PostJSON(ctx, "/chat/completions", req, &resp); err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
