package engine

import (
	"testing"

	"github.com/pramudya/lensa/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestResponsesDeterministicForSeed(t *testing.T) {
	a := NewResponses(7)
	b := NewResponses(7)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Greeting(), b.Greeting())
		assert.Equal(t, a.Thanks(), b.Thanks())
		assert.Equal(t, a.Help(), b.Help())
		assert.Equal(t, a.NoMatch("pantai"), b.NoMatch("pantai"))
	}
}

func TestResponsesNoMatchMentionsQuery(t *testing.T) {
	r := NewResponses(1)

	assert.Contains(t, r.NoMatch("gunung berapi"), `"gunung berapi"`)
}

func TestResponsesCount(t *testing.T) {
	r := NewResponses(1)

	got := r.Count(models.MediaCounts{Total: 12, Images: 9, Videos: 3})

	assert.Equal(t, "Kamu punya 12 media: 9 foto dan 3 video.", got)
}
