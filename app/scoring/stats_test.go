package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCountsAndCompletion(t *testing.T) {
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 5, false),
		answer("P1", "A1", "Governance", "D2", 3, false),
		answer("P1", "A1", "Technology", "D1", 0, true),
		answer("P2", "A1", "Organization", "D1", 4, false),
	)
	stats := Stats(store)

	assert.Equal(t, 4, stats.TotalQuestions)
	assert.Equal(t, 3, stats.AnsweredQuestions)
	assert.Equal(t, 1, stats.NAQuestions)
	assert.Equal(t, 75.0, stats.CompletionPercentage)

	// Overall: 12 of 15 achievable points.
	assert.Equal(t, 15, stats.OverallMaxScore)
	assert.Equal(t, 80.0, stats.OverallScore)

	p1 := stats.ByProcess["P1"]
	assert.Equal(t, 8, p1.TotalScore)
	assert.Equal(t, 10, p1.MaxScore)
	assert.Equal(t, 2, p1.Count)
	assert.Equal(t, 1, p1.NACount)
	assert.Equal(t, 80.0, p1.AverageScore)

	gov := stats.ByDomain["Governance"]
	require.Equal(t, 2, gov.Count)
	assert.Equal(t, 80.0, gov.AverageScore)
}

func TestStatsEmptySession(t *testing.T) {
	stats := Stats(NewStore())
	assert.Equal(t, 0, stats.TotalQuestions)
	assert.Equal(t, 0.0, stats.CompletionPercentage)
	assert.Equal(t, 0.0, stats.OverallScore)
}
