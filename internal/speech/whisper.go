package speech

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"

	"github.com/dangtuanvu/vidask/internal/logger"
	"github.com/dangtuanvu/vidask/internal/openai"
)

type implWhisper struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// NewWhisper creates a Transcriber backed by the OpenAI transcription
// endpoint.
func NewWhisper(client *openai.Client, model string, log logger.Logger) Transcriber {
	return &implWhisper{
		client: client,
		model:  model,
		logger: log,
	}
}

func (w *implWhisper) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("write audio to form: %w", err)
	}
	if err := form.WriteField("model", w.model); err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}

	w.logger.Debug(ctx, "Transcribing %s (%d bytes)", filename, len(audio))

	var resp struct {
		Text string `json:"text"`
	}
	if err := w.client.PostForm(ctx, "/audio/transcriptions", form.FormDataContentType(), &body, &resp); err != nil {
		return "", fmt.Errorf("transcribe %s: %w", filename, err)
	}

	return resp.Text, nil
}
