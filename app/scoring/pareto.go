package scoring

import (
	"math"
	"sort"

	"github.com/sandrello1971/newassessment/app/models"
)

// ParetoEntry is one bar of the Pareto chart: the share of the total maturity
// gap attributable to one process (or one domain in the inverted analysis).
type ParetoEntry struct {
	Name       string  `json:"name"`
	Gap        float64 `json:"gap"`
	GapPercent float64 `json:"gap_percent"`
	Cumulative float64 `json:"cumulative_percent"`
	IsCritical bool    `json:"is_critical"`
}

// ParetoAnalysis ranks processes and domains by their normalized distance
// from the maximum score, worst first.
type ParetoAnalysis struct {
	ByProcess      []ParetoEntry `json:"by_process"`
	ByDomain       []ParetoEntry `json:"by_domain"`
	TotalSystemGap float64       `json:"total_system_gap"`
}

const maxScore = 5.0

// Pareto computes the gap analysis: for every (process, domain) pair the gap
// is maxScore minus the mean applicable score, normalized by the number of
// processes (resp. domains), summed per process (resp. domain) and expressed
// as a share of the system total. The normalization denominator counts every
// process present in the store, including fully not-applicable ones; those
// still rank, with a zero gap. Entries are sorted by share descending; an
// entry is critical while the cumulative share stays within 80%.
func Pareto(store *Store) *ParetoAnalysis {
	answers := store.All()

	type cell struct {
		sum   int
		count int
	}
	processOrder := []string{}
	matrix := map[string]map[string]*cell{}

	for _, a := range answers {
		if _, seen := matrix[a.Process]; !seen {
			matrix[a.Process] = map[string]*cell{}
			processOrder = append(processOrder, a.Process)
		}
		v, ok := a.Score.Value()
		if !ok {
			continue
		}
		c := matrix[a.Process][a.Category]
		if c == nil {
			c = &cell{}
			matrix[a.Process][a.Category] = c
		}
		c.sum += v
		c.count++
	}

	numProcesses := len(processOrder)
	numDomains := len(models.CategoryOrder)
	if numProcesses == 0 {
		return &ParetoAnalysis{}
	}

	processGaps := map[string]float64{}
	domainGaps := map[string]float64{}

	for _, process := range processOrder {
		for _, category := range models.CategoryOrder {
			c := matrix[process][string(category)]
			if c == nil || c.count == 0 {
				continue
			}
			gap := maxScore - float64(c.sum)/float64(c.count)
			processGaps[process] += gap / float64(numProcesses)
			domainGaps[string(category)] += gap / float64(numDomains)
		}
	}

	analysis := &ParetoAnalysis{
		ByProcess:      rankGaps(processOrder, processGaps),
		TotalSystemGap: round4(sumGaps(processGaps)),
	}

	domainOrder := make([]string, 0, numDomains)
	for _, category := range models.CategoryOrder {
		domainOrder = append(domainOrder, string(category))
	}
	analysis.ByDomain = rankGaps(domainOrder, domainGaps)

	return analysis
}

func rankGaps(order []string, gaps map[string]float64) []ParetoEntry {
	total := sumGaps(gaps)

	entries := make([]ParetoEntry, 0, len(order))
	for _, name := range order {
		gap := gaps[name]
		percent := 0.0
		if total > 0 {
			percent = gap / total * 100
		}
		entries = append(entries, ParetoEntry{
			Name:       name,
			Gap:        round4(gap),
			GapPercent: round2(percent),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GapPercent > entries[j].GapPercent
	})

	cumulative := 0.0
	for i := range entries {
		cumulative += entries[i].GapPercent
		entries[i].Cumulative = round2(cumulative)
		entries[i].IsCritical = entries[i].Cumulative <= 80
	}
	return entries
}

func sumGaps(gaps map[string]float64) float64 {
	total := 0.0
	for _, g := range gaps {
		total += g
	}
	return total
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
