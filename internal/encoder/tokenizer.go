package encoder

import (
	"fmt"
	"strings"
)

// Tokenizer builds fixed-length token-id sequences: [CLS] tokens... [SEP]
// padded with [PAD], with an attention mask covering every populated
// position up to and including [SEP]. Deterministic given the vocabulary.
type Tokenizer struct {
	vocab  *Vocabulary
	seqLen int
}

// NewTokenizer creates a tokenizer producing sequences of seqLen positions.
// seqLen must leave room for [CLS] and [SEP].
func NewTokenizer(vocab *Vocabulary, seqLen int) (*Tokenizer, error) {
	if seqLen < 3 {
		return nil, fmt.Errorf("sequence length %d too short", seqLen)
	}
	return &Tokenizer{vocab: vocab, seqLen: seqLen}, nil
}

// SequenceLength returns the fixed sequence length.
func (t *Tokenizer) SequenceLength() int {
	return t.seqLen
}

// Encode tokenizes the lowercased query by whitespace and returns the id
// sequence and attention mask, both of length SequenceLength. Tokens beyond
// position seqLen-2 are truncated so [SEP] always fits.
func (t *Tokenizer) Encode(query string) (ids []int64, mask []int64) {
	ids = make([]int64, t.seqLen)
	mask = make([]int64, t.seqLen)

	for i := range ids {
		ids[i] = t.vocab.PadID
	}

	ids[0] = t.vocab.ClsID
	mask[0] = 1

	pos := 1
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if pos > t.seqLen-2 {
			break
		}
		ids[pos] = t.vocab.ID(token)
		mask[pos] = 1
		pos++
	}

	ids[pos] = t.vocab.SepID
	mask[pos] = 1

	return ids, mask
}
