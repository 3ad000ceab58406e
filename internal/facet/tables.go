// Package facet normalizes raw extracted entity values into the fixed
// facet vocabulary.
package facet

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables holds the two static lookup tables the canonicalizer works from:
// the alias map (raw term -> canonical label) and the valid-label set.
// Immutable after construction.
type Tables struct {
	aliases map[string]string
	labels  map[string]struct{}
}

// defaultAliases maps colloquial or foreign terms onto the label vocabulary.
var defaultAliases = map[string]string{
	"kucing":   "hewan",
	"anjing":   "hewan",
	"burung":   "hewan",
	"cat":      "hewan",
	"dog":      "hewan",
	"animal":   "hewan",
	"car":      "mobil",
	"kendaraan": "mobil",
	"beach":    "pantai",
	"laut":     "pantai",
	"food":     "makanan",
	"makan":    "makanan",
	"people":   "orang",
	"wajah":    "orang",
	"person":   "orang",
	"flower":   "bunga",
	"mountain": "gunung",
	"bukit":    "gunung",
	"building": "bangunan",
	"gedung":   "bangunan",
	"document": "dokumen",
	"screenshot": "dokumen",
	"sky":      "langit",
}

// defaultLabels is the closed vocabulary the image classifier emits.
var defaultLabels = []string{
	"hewan", "mobil", "pantai", "makanan", "orang",
	"bunga", "gunung", "bangunan", "dokumen", "langit", "selfie",
}

// DefaultTables returns the compiled-in alias and label tables.
func DefaultTables() *Tables {
	return NewTables(defaultAliases, defaultLabels)
}

// NewTables builds a table set from explicit maps. Inputs are copied.
func NewTables(aliases map[string]string, labels []string) *Tables {
	t := &Tables{
		aliases: make(map[string]string, len(aliases)),
		labels:  make(map[string]struct{}, len(labels)),
	}
	for k, v := range aliases {
		t.aliases[k] = v
	}
	for _, l := range labels {
		t.labels[l] = struct{}{}
	}
	return t
}

// tableFile is the on-disk YAML shape for alias and label assets.
type tableFile struct {
	Aliases map[string]string `yaml:"aliases"`
	Labels  []string          `yaml:"labels"`
}

// LoadTables reads alias and label tables from YAML files. Either path may
// be empty, in which case the compiled-in defaults fill that half.
func LoadTables(aliasPath, labelPath string) (*Tables, error) {
	aliases := defaultAliases
	labels := defaultLabels

	if aliasPath != "" {
		var f tableFile
		if err := readYAML(aliasPath, &f); err != nil {
			return nil, fmt.Errorf("load alias table: %w", err)
		}
		if len(f.Aliases) > 0 {
			aliases = f.Aliases
		}
	}

	if labelPath != "" {
		var f tableFile
		if err := readYAML(labelPath, &f); err != nil {
			return nil, fmt.Errorf("load label table: %w", err)
		}
		if len(f.Labels) > 0 {
			labels = f.Labels
		}
	}

	return NewTables(aliases, labels), nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ValidLabel reports whether label is a member of the closed vocabulary.
func (t *Tables) ValidLabel(label string) bool {
	_, ok := t.labels[label]
	return ok
}

// Alias returns the canonical label for a raw term, if one is registered.
func (t *Tables) Alias(raw string) (string, bool) {
	canonical, ok := t.aliases[raw]
	return canonical, ok
}

// Labels returns the vocabulary as a slice (copy, any order).
func (t *Tables) Labels() []string {
	out := make([]string, 0, len(t.labels))
	for l := range t.labels {
		out = append(out, l)
	}
	return out
}
