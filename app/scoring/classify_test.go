package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdBoundaries(t *testing.T) {
	cases := []struct {
		value float64
		tier  Tier
	}{
		{0.0, TierCritical},
		{1.00, TierCritical}, // inclusive upper bound
		{1.01, TierWeakness},
		{1.99, TierWeakness},
		{2.00, TierNeutral},
		{2.99, TierNeutral},
		{3.00, TierStrength}, // inclusive lower bound
		{5.00, TierStrength},
	}
	for _, tc := range cases {
		tier, ok := ClassifyAverage(Rate(tc.value))
		require.True(t, ok)
		assert.Equal(t, tc.tier, tier, "average %.2f", tc.value)
	}
}

func TestUndefinedAverageBelongsToNoTier(t *testing.T) {
	_, ok := ClassifyAverage(Rating{})
	assert.False(t, ok)
}

func TestClassifyExcludesUndefinedRows(t *testing.T) {
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 0, true),
		answer("P1", "A2", "Governance", "D1", 0, false),
	)
	c := Classify(Compute(store))

	require.Len(t, c.Critical, 1)
	assert.Equal(t, "A2", c.Critical[0].Activity)
	assert.Empty(t, c.Strengths)
	assert.Empty(t, c.Weaknesses)
}

func TestClassifyBucketsAndSorts(t *testing.T) {
	store := storeOf(
		answer("P2", "A1", "Governance", "D1", 5, false),
		answer("P1", "A1", "Governance", "D1", 3, false),
		answer("P1", "A2", "Governance", "D1", 4, false),
		answer("P1", "A3", "Governance", "D1", 2, false), // neutral, flagged nowhere
		answer("P2", "A2", "Technology", "D1", 1, false),
		answer("P1", "A4", "Technology", "D1", 0, false),
	)
	c := Classify(Compute(store))

	// Strengths: process name first, then average descending.
	require.Len(t, c.Strengths, 3)
	assert.Equal(t, "A2", c.Strengths[0].Activity)
	assert.Equal(t, "A1", c.Strengths[1].Activity)
	assert.Equal(t, "P2", c.Strengths[2].Process)

	// Critical: ascending, worst first within each process.
	require.Len(t, c.Critical, 2)
	assert.Equal(t, "A4", c.Critical[0].Activity)
	assert.Equal(t, "A2", c.Critical[1].Activity)

	assert.Empty(t, c.Weaknesses)
}

func TestWeaknessBandIsExclusiveOfCritical(t *testing.T) {
	// Averages of 1.5 land in weakness, 1.0 in critical: the two bands never
	// overlap regardless of which call site asks.
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 1, false),
		answer("P1", "A1", "Governance", "D2", 2, false), // row average 1.5
		answer("P1", "A2", "Governance", "D1", 1, false), // row average 1.0
	)
	c := Classify(Compute(store))

	require.Len(t, c.Weaknesses, 1)
	assert.Equal(t, "A1", c.Weaknesses[0].Activity)
	require.Len(t, c.Critical, 1)
	assert.Equal(t, "A2", c.Critical[0].Activity)
}
