package scoring

import "github.com/sandrello1971/newassessment/app/models"

// Key is the composite identity of one evaluable item. It is unique within a
// session; lookups and upserts join on it.
type Key struct {
	Process   string `json:"process"`
	Activity  string `json:"activity"`
	Category  string `json:"category"`
	Dimension string `json:"dimension"`
}

// Score is either an applicable value in [0,5] or not applicable. Reading the
// value of a not-applicable score is a bug, so it is only reachable through
// Value.
type Score struct {
	value         int
	notApplicable bool
}

// Applicable returns a score carrying v.
func Applicable(v int) Score {
	return Score{value: v}
}

// NotApplicable returns the score excluded from every average.
func NotApplicable() Score {
	return Score{notApplicable: true}
}

// Value returns the numeric score and whether it is applicable.
func (s Score) Value() (int, bool) {
	if s.notApplicable {
		return 0, false
	}
	return s.value, true
}

// IsNotApplicable reports whether the score is excluded from averaging.
func (s Score) IsNotApplicable() bool {
	return s.notApplicable
}

// RetainedValue returns the raw stored value regardless of applicability. It
// exists so persistence can round-trip the value hidden behind a
// not-applicable flag; averaging must go through Value.
func (s Score) RetainedValue() int {
	return s.value
}

// Answer is one stored answer of the session.
type Answer struct {
	Key
	Score Score
	Note  string
}

// DefaultScore is assigned to every question when a session is prepopulated
// from its template, before the user edits anything.
const DefaultScore = 3

// Update carries the fields of a point edit. Nil fields preserve the stored
// value, so repeated partial edits never disturb unrelated data.
type Update struct {
	Score           *int
	Note            *string
	IsNotApplicable *bool
}

// Store holds the current mapping from question identity to answer. Iteration
// order is insertion order, stable across reads, so serializing the store
// twice yields the same sequence.
type Store struct {
	answers map[Key]*Answer
	order   []Key
}

func NewStore() *Store {
	return &Store{answers: make(map[Key]*Answer)}
}

// Load seeds the store with one default answer per question: score 3, empty
// note, applicable. Only template load may synthesize defaults; later misses
// are reported, never papered over.
func (s *Store) Load(questions []Key) {
	for _, k := range questions {
		if _, ok := s.answers[k]; ok {
			continue
		}
		s.insert(&Answer{Key: k, Score: Applicable(DefaultScore)})
	}
}

// FromResults builds a store from the flat records returned by the results
// endpoint, preserving their order.
func FromResults(results []*models.AssessmentResult) *Store {
	s := NewStore()
	for _, r := range results {
		s.insert(&Answer{
			Key:   Key{Process: r.Process, Activity: r.Activity, Category: r.Category, Dimension: r.Dimension},
			Score: Score{value: r.Score, notApplicable: r.IsNotApplicable},
			Note:  r.Note,
		})
	}
	return s
}

// Get looks up one answer. A miss is a normal state while a template is
// mid-load; callers skip silently.
func (s *Store) Get(process, activity, category, dimension string) (Answer, bool) {
	a, ok := s.answers[Key{Process: process, Activity: activity, Category: category, Dimension: dimension}]
	if !ok {
		return Answer{}, false
	}
	return *a, true
}

// Set upserts one answer, preserving fields the update does not supply.
// Last write wins; calling it repeatedly with the same arguments converges.
func (s *Store) Set(k Key, u Update) {
	a, ok := s.answers[k]
	if !ok {
		a = &Answer{Key: k}
		s.insert(a)
	}
	if u.Score != nil {
		a.Score.value = *u.Score
	}
	if u.IsNotApplicable != nil {
		a.Score.notApplicable = *u.IsNotApplicable
	}
	if u.Note != nil {
		a.Note = *u.Note
	}
}

// All returns every answer in insertion order. The slice is a copy; mutating
// it does not affect the store.
func (s *Store) All() []Answer {
	out := make([]Answer, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, *s.answers[k])
	}
	return out
}

// Len returns the number of stored answers.
func (s *Store) Len() int {
	return len(s.order)
}

func (s *Store) insert(a *Answer) {
	s.answers[a.Key] = a
	s.order = append(s.order, a.Key)
}
