package analyses

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankSectionsOrdersAndCaps(t *testing.T) {
	sections := make([]scoredSection, 0, 15)
	for i := 0; i < 15; i++ {
		sections = append(sections, scoredSection{
			Page:  1,
			Text:  fmt.Sprintf("section %d", i),
			Score: float64(i) / 15,
		})
	}

	ranked := rankSections(sections, 10)

	assert.Len(t, ranked, 10)
	assert.Equal(t, "section 14", ranked[0].Text)
	for i, section := range ranked {
		assert.Equal(t, i+1, section.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].Score, section.Score)
		}
	}
}

func TestRankSectionsStableOnTies(t *testing.T) {
	sections := []scoredSection{
		{Text: "first", Score: 0.5},
		{Text: "second", Score: 0.5},
		{Text: "third", Score: 0.5},
	}

	ranked := rankSections(sections, 10)

	assert.Equal(t, "first", ranked[0].Text)
	assert.Equal(t, "second", ranked[1].Text)
	assert.Equal(t, "third", ranked[2].Text)
}

func TestRankSectionsEmptyInput(t *testing.T) {
	ranked := rankSections(nil, 10)

	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankSectionsDefaultLimit(t *testing.T) {
	sections := make([]scoredSection, 12)

	ranked := rankSections(sections, 0)

	assert.Len(t, ranked, DefaultTopK)
}

func TestRankSectionsDoesNotMutateInput(t *testing.T) {
	sections := []scoredSection{
		{Text: "low", Score: 0.1},
		{Text: "high", Score: 0.9},
	}

	rankSections(sections, 10)

	assert.Equal(t, "low", sections[0].Text)
	assert.Equal(t, "high", sections[1].Text)
}
