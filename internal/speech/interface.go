package speech

import "context"

// Transcriber turns one audio segment into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}
