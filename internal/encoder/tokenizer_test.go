package encoder

import "testing"

func testVocab(t *testing.T) *Vocabulary {
	t.Helper()
	v, err := NewVocabulary(map[string]int64{
		"[PAD]":   0,
		"[UNK]":   1,
		"[CLS]":   2,
		"[SEP]":   3,
		"liburan": 4,
		"pantai":  5,
		"foto":    6,
	})
	if err != nil {
		t.Fatalf("NewVocabulary() error = %v", err)
	}
	return v
}

func TestNewVocabulary_MissingSpecialToken(t *testing.T) {
	_, err := NewVocabulary(map[string]int64{
		"[PAD]": 0, "[CLS]": 1, "[SEP]": 2,
	})
	if err == nil {
		t.Fatal("NewVocabulary() without [UNK] should fail")
	}
}

func TestTokenizer_Encode(t *testing.T) {
	tok, err := NewTokenizer(testVocab(t), 8)
	if err != nil {
		t.Fatalf("NewTokenizer() error = %v", err)
	}

	tests := []struct {
		name     string
		query    string
		wantIDs  []int64
		wantMask []int64
	}{
		{
			name:     "known tokens",
			query:    "Liburan Pantai",
			wantIDs:  []int64{2, 4, 5, 3, 0, 0, 0, 0},
			wantMask: []int64{1, 1, 1, 1, 0, 0, 0, 0},
		},
		{
			name:     "unknown token maps to UNK",
			query:    "liburan seru",
			wantIDs:  []int64{2, 4, 1, 3, 0, 0, 0, 0},
			wantMask: []int64{1, 1, 1, 1, 0, 0, 0, 0},
		},
		{
			name:     "empty query",
			query:    "",
			wantIDs:  []int64{2, 3, 0, 0, 0, 0, 0, 0},
			wantMask: []int64{1, 1, 0, 0, 0, 0, 0, 0},
		},
		{
			name:     "truncation keeps SEP in bounds",
			query:    "foto foto foto foto foto foto foto foto foto",
			wantIDs:  []int64{2, 6, 6, 6, 6, 6, 6, 3},
			wantMask: []int64{1, 1, 1, 1, 1, 1, 1, 1},
		},
		{
			name:     "whitespace collapsed",
			query:    "  liburan   pantai  ",
			wantIDs:  []int64{2, 4, 5, 3, 0, 0, 0, 0},
			wantMask: []int64{1, 1, 1, 1, 0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, mask := tok.Encode(tt.query)
			for i := range tt.wantIDs {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
					break
				}
			}
			for i := range tt.wantMask {
				if mask[i] != tt.wantMask[i] {
					t.Errorf("mask = %v, want %v", mask, tt.wantMask)
					break
				}
			}
		})
	}
}

func TestTokenizer_Deterministic(t *testing.T) {
	tok, err := NewTokenizer(testVocab(t), 16)
	if err != nil {
		t.Fatalf("NewTokenizer() error = %v", err)
	}

	ids1, mask1 := tok.Encode("liburan pantai foto")
	ids2, mask2 := tok.Encode("liburan pantai foto")

	for i := range ids1 {
		if ids1[i] != ids2[i] || mask1[i] != mask2[i] {
			t.Fatal("Encode() is not deterministic")
		}
	}
}
