// Package encoder turns query text into a fixed-length vector and ranks
// label embeddings by cosine similarity.
package encoder

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Special tokens the vocabulary asset must define.
const (
	TokenPad = "[PAD]"
	TokenCLS = "[CLS]"
	TokenSep = "[SEP]"
	TokenUnk = "[UNK]"
)

// Vocabulary maps tokens to integer ids. Immutable after load.
type Vocabulary struct {
	ids map[string]int64

	PadID int64
	ClsID int64
	SepID int64
	UnkID int64
}

// LoadVocabulary reads a vocab.txt asset: one token per line, the id being
// the zero-based line number. All four special tokens must be present.
func LoadVocabulary(path string) (*Vocabulary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer file.Close()

	ids := make(map[string]int64)
	scanner := bufio.NewScanner(file)
	var line int64
	for scanner.Scan() {
		token := strings.TrimRight(scanner.Text(), "\r\n")
		if token != "" {
			ids[token] = line
		}
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	return NewVocabulary(ids)
}

// NewVocabulary builds a vocabulary from an explicit token->id map.
func NewVocabulary(ids map[string]int64) (*Vocabulary, error) {
	v := &Vocabulary{ids: ids}

	for _, special := range []struct {
		token string
		dst   *int64
	}{
		{TokenPad, &v.PadID},
		{TokenCLS, &v.ClsID},
		{TokenSep, &v.SepID},
		{TokenUnk, &v.UnkID},
	} {
		id, ok := ids[special.token]
		if !ok {
			return nil, fmt.Errorf("vocabulary missing special token %s", special.token)
		}
		*special.dst = id
	}

	return v, nil
}

// ID returns the id for a token, falling back to [UNK].
func (v *Vocabulary) ID(token string) int64 {
	if id, ok := v.ids[token]; ok {
		return id
	}
	return v.UnkID
}

// Size returns the number of known tokens.
func (v *Vocabulary) Size() int {
	return len(v.ids)
}
