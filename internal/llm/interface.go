package llm

import "context"

// Generator answers questions about a transcript and summarizes
// transcript excerpts. Both run at a low temperature for
// determinism-leaning output.
type Generator interface {
	Answer(ctx context.Context, transcript, question string) (string, error)
	Summarize(ctx context.Context, excerpt string) (string, error)
}
