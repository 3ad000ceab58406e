package engine

import (
	"fmt"
	"math/rand"

	"github.com/pramudya/lensa/internal/models"
)

// Responses picks conversational reply templates. Selection is driven by an
// injected seed so tests are deterministic.
type Responses struct {
	rng *rand.Rand
}

// NewResponses creates a template picker with the given seed.
func NewResponses(seed int64) *Responses {
	return &Responses{rng: rand.New(rand.NewSource(seed))}
}

var greetingTemplates = []string{
	"Halo! Mau cari foto atau video apa hari ini?",
	"Hai! Coba ketik sesuatu seperti \"foto pantai 2023\".",
	"Halo! Aku siap bantu cari media kamu.",
}

var thanksTemplates = []string{
	"Sama-sama!",
	"Senang bisa membantu!",
	"Kapan saja!",
}

var helpTemplates = []string{
	"Kamu bisa mencari berdasarkan label, tahun, bulan, album, atau lokasi. Contoh: \"foto hewan di Bali 2022\".",
	"Coba sebutkan apa yang kamu cari, misal \"video liburan keluarga\" atau \"foto mobil januari\".",
}

var noMatchTemplates = []string{
	"Tidak ada hasil untuk %q, coba kata lain ya.",
	"Aku tidak menemukan apa pun untuk %q. Coba kata yang berbeda.",
}

func (r *Responses) pick(templates []string) string {
	return templates[r.rng.Intn(len(templates))]
}

// Greeting returns a greeting reply.
func (r *Responses) Greeting() string {
	return r.pick(greetingTemplates)
}

// Thanks returns a you're-welcome reply.
func (r *Responses) Thanks() string {
	return r.pick(thanksTemplates)
}

// Help returns a usage hint reply.
func (r *Responses) Help() string {
	return r.pick(helpTemplates)
}

// NoMatch returns the terminal zero-result message for a query.
func (r *Responses) NoMatch(query string) string {
	return fmt.Sprintf(r.pick(noMatchTemplates), query)
}

// Count formats the three scalar aggregates.
func (r *Responses) Count(counts models.MediaCounts) string {
	return fmt.Sprintf("Kamu punya %d media: %d foto dan %d video.",
		counts.Total, counts.Images, counts.Videos)
}
