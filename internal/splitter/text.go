package splitter

import "fmt"

// Tokenizer is the text-tokenization scheme used to bound request sizes.
// SentenceBoundary returns the id of the token chunks should end on when
// one is available inside the window.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)
	SentenceBoundary() int
}

// TextChunk is one token-bounded, sentence-aligned slice of a transcript.
type TextChunk struct {
	Index int
	Text  string
}

// SplitTokens partitions tokens into ordered chunks of at most
// maxPerChunk tokens, preferring to end each chunk just after the nearest
// boundary token. The backward scan is floored at the chunk start: when no
// boundary token exists inside the window the chunk is hard-cut at the
// candidate end instead of shrinking to nothing.
//
// Concatenating the returned chunks reproduces tokens exactly.
func SplitTokens(tokens []int, maxPerChunk int, boundary int) ([][]int, error) {
	if maxPerChunk <= 0 {
		return nil, fmt.Errorf("%w: max tokens per chunk must be positive, got %d", ErrInvalidInput, maxPerChunk)
	}

	var chunks [][]int
	for i := 0; i < len(tokens); {
		cand := i + maxPerChunk
		if cand >= len(tokens) {
			chunks = append(chunks, tokens[i:])
			break
		}

		end := cand
		for b := cand; b > i; b-- {
			if tokens[b] == boundary {
				// boundary token belongs to this chunk
				end = b + 1
				break
			}
		}
		chunks = append(chunks, tokens[i:end])
		i = end
	}

	return chunks, nil
}

// SplitText tokenizes text, partitions the tokens with SplitTokens and
// decodes each partition back into a chunk.
func SplitText(tok Tokenizer, text string, maxPerChunk int) ([]TextChunk, error) {
	tokens, err := tok.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}

	parts, err := SplitTokens(tokens, maxPerChunk, tok.SentenceBoundary())
	if err != nil {
		return nil, err
	}

	chunks := make([]TextChunk, 0, len(parts))
	for i, part := range parts {
		decoded, err := tok.Decode(part)
		if err != nil {
			return nil, fmt.Errorf("decode chunk %d: %w", i+1, err)
		}
		chunks = append(chunks, TextChunk{Index: i + 1, Text: decoded})
	}

	return chunks, nil
}

// CountTokens returns the token count of text under tok's scheme.
func CountTokens(tok Tokenizer, text string) (int, error) {
	tokens, err := tok.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("encode text: %w", err)
	}
	return len(tokens), nil
}
