// Package tokenize adapts a HuggingFace-format tokenizer to the splitter's
// Tokenizer interface.
package tokenize

import (
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"

	"github.com/dangtuanvu/vidask/internal/splitter"
)

type implTokenizer struct {
	tok      *tokenizer.Tokenizer
	boundary int
}

// Load reads a tokenizer.json from path. The sentence boundary is the id
// of the "." token under the loaded vocabulary.
func Load(path string) (splitter.Tokenizer, error) {
	tok, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", path, err)
	}

	boundary, ok := tok.TokenToId(".")
	if !ok {
		// Vocabularies without a bare "." still encode it somehow; use
		// the last token of the encoded form
		enc, err := tok.EncodeSingle(".")
		if err != nil || len(enc.GetIds()) == 0 {
			return nil, fmt.Errorf("tokenizer %s has no sentence boundary token", path)
		}
		ids := enc.GetIds()
		boundary = ids[len(ids)-1]
	}

	return &implTokenizer{tok: tok, boundary: boundary}, nil
}

func (t *implTokenizer) Encode(text string) ([]int, error) {
	enc, err := t.tok.EncodeSingle(text)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return enc.GetIds(), nil
}

func (t *implTokenizer) Decode(ids []int) (string, error) {
	return t.tok.Decode(ids, true), nil
}

func (t *implTokenizer) SentenceBoundary() int {
	return t.boundary
}
