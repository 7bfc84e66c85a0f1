package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(process, activity, category, dimension string, score int, na bool) Answer {
	s := Applicable(score)
	if na {
		s = NotApplicable()
	}
	return Answer{
		Key:   Key{Process: process, Activity: activity, Category: category, Dimension: dimension},
		Score: s,
	}
}

func storeOf(answers ...Answer) *Store {
	s := NewStore()
	for _, a := range answers {
		v, ok := a.Score.Value()
		na := !ok
		s.Set(a.Key, Update{Score: &v, IsNotApplicable: &na, Note: &a.Note})
	}
	return s
}

func TestRowAverageExcludesNotApplicable(t *testing.T) {
	// The NA entry must appear in neither the numerator nor the denominator.
	avg := RowAverage([]Answer{
		answer("P1", "A1", "Governance", "D1", 5, false),
		answer("P1", "A1", "Governance", "D2", 0, true),
	})
	require.True(t, avg.Valid)
	assert.Equal(t, 5.0, avg.Value)
}

func TestRowAverageAllNotApplicableIsUndefined(t *testing.T) {
	avg := RowAverage([]Answer{
		answer("P1", "A1", "Technology", "D1", 0, true),
		answer("P1", "A1", "Technology", "D2", 5, true),
	})
	assert.False(t, avg.Valid)
}

func TestRowAverageEmptyInput(t *testing.T) {
	assert.False(t, RowAverage(nil).Valid)
}

func TestMeanSkipsUndefinedInputs(t *testing.T) {
	avg := CategoryAverage([]Rating{Rate(4), {}, Rate(2), {}})
	require.True(t, avg.Valid)
	assert.Equal(t, 3.0, avg.Value)

	assert.False(t, CategoryAverage([]Rating{{}, {}}).Valid)
	assert.False(t, ProcessRating(nil).Valid)
	assert.False(t, FinalRate([]Rating{{}}).Valid)
}

func TestNullPropagatesThroughAllLevels(t *testing.T) {
	// A fully not-applicable row contributes nothing to its category average
	// or process rating: not to the sum, not to the count.
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 4, false),
		answer("P1", "A2", "Governance", "D1", 0, true),
	)
	report := Compute(store)

	require.Len(t, report.Processes, 1)
	pr := report.Processes[0]
	require.Len(t, pr.Activities, 2)
	assert.False(t, pr.Activities[1].Average.Valid)

	gov := pr.Categories["Governance"]
	require.True(t, gov.Valid)
	assert.Equal(t, 4.0, gov.Value, "the undefined row must not drag the category average down")

	require.True(t, pr.Rating.Valid)
	assert.Equal(t, 4.0, pr.Rating.Value)
}

func TestFinalRateFlattensCategoryAverages(t *testing.T) {
	// Two processes: one with four populated categories at 4, one with a
	// single populated category at 2. The final rate weights by populated
	// category count, not by process count: (4+4+4+4+2)/5 = 3.6, not 3.0.
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 4, false),
		answer("P1", "A1", "Monitoring & Control", "D1", 4, false),
		answer("P1", "A1", "Technology", "D1", 4, false),
		answer("P1", "A1", "Organization", "D1", 4, false),
		answer("P2", "A1", "Governance", "D1", 0, true),
		answer("P2", "A1", "Monitoring & Control", "D1", 0, true),
		answer("P2", "A1", "Technology", "D1", 0, true),
		answer("P2", "A1", "Organization", "D1", 2, false),
	)
	report := Compute(store)

	require.True(t, report.FinalRate.Valid)
	assert.InDelta(t, 3.6, report.FinalRate.Value, 1e-9)
}

func TestProcessWithNoApplicableAnswers(t *testing.T) {
	// A process with all categories undefined yields an undefined rating and
	// is excluded from the final rate entirely, not counted as zero.
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 4, false),
		answer("P2", "A1", "Governance", "D1", 0, true),
	)
	report := Compute(store)

	require.Len(t, report.Processes, 2)
	assert.False(t, report.Processes[1].Rating.Valid)
	require.True(t, report.FinalRate.Valid)
	assert.Equal(t, 4.0, report.FinalRate.Value)
}

func TestEndToEndScenario(t *testing.T) {
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 5, false),
		answer("P1", "A1", "Governance", "D2", 3, false),
		answer("P1", "A1", "Technology", "D1", 0, true),
	)
	report := Compute(store)

	require.Len(t, report.Processes, 1)
	pr := report.Processes[0]
	require.Len(t, pr.Activities, 1)
	row := pr.Activities[0]

	gov := row.ByCategory["Governance"]
	require.True(t, gov.Valid)
	assert.Equal(t, 4.0, gov.Value)

	tech := row.ByCategory["Technology"]
	assert.False(t, tech.Valid)
	assert.False(t, pr.Categories["Technology"].Valid)

	require.True(t, pr.Rating.Valid)
	assert.Equal(t, 4.0, pr.Rating.Value, "only Governance counts toward the process rating")
}

func TestComputeIsDeterministic(t *testing.T) {
	// Recomputing over unchanged answers reproduces the same numbers: no
	// hidden mutable state influences the calculation.
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 5, false),
		answer("P1", "A1", "Technology", "D1", 2, false),
		answer("P2", "A1", "Organization", "D1", 1, false),
		answer("P2", "A2", "Governance", "D1", 0, true),
	)
	first := Compute(store)
	second := Compute(store)
	assert.Equal(t, first, second)
}

func TestRatingJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Rating{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(Rate(3.5))
	require.NoError(t, err)
	assert.Equal(t, "3.5", string(b))

	var r Rating
	require.NoError(t, json.Unmarshal([]byte("null"), &r))
	assert.False(t, r.Valid)
	require.NoError(t, json.Unmarshal([]byte("2.75"), &r))
	assert.Equal(t, Rate(2.75), r)
}

func TestRound2OnlyAffectsPresentation(t *testing.T) {
	r := Rate(10.0 / 3.0)
	assert.Equal(t, 3.33, r.Round2().Value)
	assert.False(t, Rating{}.Round2().Valid)
}
