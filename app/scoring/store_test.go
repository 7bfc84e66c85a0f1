package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrello1971/newassessment/app/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestLoadSeedsDefaults(t *testing.T) {
	s := NewStore()
	s.Load([]Key{
		{Process: "P1", Activity: "A1", Category: "Governance", Dimension: "D1"},
		{Process: "P1", Activity: "A1", Category: "Governance", Dimension: "D2"},
	})

	require.Equal(t, 2, s.Len())
	a, ok := s.Get("P1", "A1", "Governance", "D1")
	require.True(t, ok)
	v, applicable := a.Score.Value()
	assert.True(t, applicable)
	assert.Equal(t, DefaultScore, v)
	assert.Empty(t, a.Note)
}

func TestLoadDoesNotOverwriteExistingAnswers(t *testing.T) {
	k := Key{Process: "P1", Activity: "A1", Category: "Governance", Dimension: "D1"}
	s := NewStore()
	s.Set(k, Update{Score: intPtr(5)})
	s.Load([]Key{k})

	a, _ := s.Get("P1", "A1", "Governance", "D1")
	v, _ := a.Score.Value()
	assert.Equal(t, 5, v)
	assert.Equal(t, 1, s.Len())
}

func TestGetMissingKeyIsNotFatal(t *testing.T) {
	s := NewStore()
	_, ok := s.Get("P1", "A1", "Governance", "D1")
	assert.False(t, ok)
}

func TestSetPreservesUnsuppliedFields(t *testing.T) {
	k := Key{Process: "P1", Activity: "A1", Category: "Technology", Dimension: "D1"}
	s := NewStore()
	s.Set(k, Update{Score: intPtr(4), Note: strPtr("legacy ERP")})

	// A score-only edit must not disturb the note.
	s.Set(k, Update{Score: intPtr(2)})
	a, _ := s.Get("P1", "A1", "Technology", "D1")
	v, _ := a.Score.Value()
	assert.Equal(t, 2, v)
	assert.Equal(t, "legacy ERP", a.Note)

	// Toggling not-applicable hides the value but keeps the note.
	s.Set(k, Update{IsNotApplicable: boolPtr(true)})
	a, _ = s.Get("P1", "A1", "Technology", "D1")
	_, applicable := a.Score.Value()
	assert.False(t, applicable)
	assert.Equal(t, "legacy ERP", a.Note)

	// Toggling it back restores the last written value.
	s.Set(k, Update{IsNotApplicable: boolPtr(false)})
	a, _ = s.Get("P1", "A1", "Technology", "D1")
	v, applicable = a.Score.Value()
	assert.True(t, applicable)
	assert.Equal(t, 2, v)
}

func TestSetIsIdempotent(t *testing.T) {
	k := Key{Process: "P1", Activity: "A1", Category: "Organization", Dimension: "D1"}
	s := NewStore()
	for i := 0; i < 3; i++ {
		s.Set(k, Update{Score: intPtr(1), IsNotApplicable: boolPtr(false)})
	}
	assert.Equal(t, 1, s.Len())
	a, _ := s.Get("P1", "A1", "Organization", "D1")
	v, _ := a.Score.Value()
	assert.Equal(t, 1, v)
}

func TestAllKeepsInsertionOrder(t *testing.T) {
	keys := []Key{
		{Process: "P2", Activity: "A1", Category: "Governance", Dimension: "D1"},
		{Process: "P1", Activity: "A9", Category: "Technology", Dimension: "D1"},
		{Process: "P1", Activity: "A1", Category: "Governance", Dimension: "D1"},
	}
	s := NewStore()
	s.Load(keys)

	// Point updates must not reshuffle the sequence.
	s.Set(keys[1], Update{Score: intPtr(0)})

	all := s.All()
	require.Len(t, all, 3)
	for i, k := range keys {
		assert.Equal(t, k, all[i].Key)
	}

	again := s.All()
	assert.Equal(t, all, again)
}

func TestFromResultsPreservesOrderAndScores(t *testing.T) {
	results := []*models.AssessmentResult{
		{Process: "P1", Activity: "A1", Category: "Governance", Dimension: "D1", Score: 5},
		{Process: "P1", Activity: "A1", Category: "Technology", Dimension: "D1", Score: 0, IsNotApplicable: true, Note: "outsourced"},
	}
	s := FromResults(results)

	require.Equal(t, 2, s.Len())
	all := s.All()
	v, applicable := all[0].Score.Value()
	assert.True(t, applicable)
	assert.Equal(t, 5, v)

	_, applicable = all[1].Score.Value()
	assert.False(t, applicable)
	assert.Equal(t, "outsourced", all[1].Note)
}
