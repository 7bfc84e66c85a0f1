package scoring

import (
	"encoding/json"
	"math"

	"github.com/sandrello1971/newassessment/app/models"
)

// Rating is an arithmetic mean that is undefined when no applicable input
// exists. The undefined state is data, not an error: it propagates through
// every aggregation level and is never coerced to zero. The zero value is the
// undefined rating.
type Rating struct {
	Valid bool
	Value float64
}

// Rate returns a defined rating.
func Rate(v float64) Rating {
	return Rating{Valid: true, Value: v}
}

// Round2 returns the rating rounded to two decimals for presentation.
// Intermediate aggregation always runs on the full-precision value.
func (r Rating) Round2() Rating {
	if !r.Valid {
		return r
	}
	return Rate(math.Round(r.Value*100) / 100)
}

// MarshalJSON encodes an undefined rating as null, a defined one as a number.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts null or a number.
func (r *Rating) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Rating{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Rate(v)
	return nil
}

// RowAverage computes the mean score of one row, excluding not-applicable
// answers from both the numerator and the denominator. It is undefined when
// the row has no applicable answer.
func RowAverage(answers []Answer) Rating {
	sum, count := 0, 0
	for _, a := range answers {
		if v, ok := a.Score.Value(); ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return Rating{}
	}
	return Rate(float64(sum) / float64(count))
}

// CategoryAverage computes the mean of the defined row averages within one
// category for one process. An all-undefined input yields the undefined
// rating; the denominator counts defined inputs only.
func CategoryAverage(rowAverages []Rating) Rating {
	return mean(rowAverages)
}

// ProcessRating computes the mean of the defined category averages of one
// process, with the same propagation rule.
func ProcessRating(categoryAverages []Rating) Rating {
	return mean(categoryAverages)
}

// FinalRate computes the headline score: the mean of every defined category
// average across every process, flattened. It is deliberately not a mean of
// process ratings, so a process with a single populated category does not
// weigh as much as a fully populated one.
func FinalRate(allCategoryAverages []Rating) Rating {
	return mean(allCategoryAverages)
}

func mean(ratings []Rating) Rating {
	sum, count := 0.0, 0
	for _, r := range ratings {
		if r.Valid {
			sum += r.Value
			count++
		}
	}
	if count == 0 {
		return Rating{}
	}
	return Rate(sum / float64(count))
}

// ActivityReport is one (process, activity) row of the result table.
type ActivityReport struct {
	Process    string            `json:"process"`
	Activity   string            `json:"activity"`
	ByCategory map[string]Rating `json:"by_category"`
	Average    Rating            `json:"average"`
}

// ProcessReport aggregates one process: its rows, its per-category averages
// and its overall rating.
type ProcessReport struct {
	Process    string            `json:"process"`
	Activities []ActivityReport  `json:"activities"`
	Categories map[string]Rating `json:"categories"`
	Rating     Rating            `json:"rating"`
}

// Report is the full aggregation of a session's answers.
type Report struct {
	Processes []ProcessReport `json:"processes"`
	FinalRate Rating          `json:"final_rate"`
}

// Compute folds a store into the three-level aggregate hierarchy. Processes
// and activities keep first-seen order so recomputing over the same answers
// is deterministic.
func Compute(store *Store) *Report {
	answers := store.All()

	type rowKey struct{ process, activity string }
	rowOrder := []rowKey{}
	rows := map[rowKey][]Answer{}
	processOrder := []string{}
	seenProcess := map[string]bool{}

	for _, a := range answers {
		rk := rowKey{a.Process, a.Activity}
		if _, ok := rows[rk]; !ok {
			rowOrder = append(rowOrder, rk)
		}
		rows[rk] = append(rows[rk], a)
		if !seenProcess[a.Process] {
			seenProcess[a.Process] = true
			processOrder = append(processOrder, a.Process)
		}
	}

	report := &Report{}
	allCategoryAverages := []Rating{}

	for _, process := range processOrder {
		pr := ProcessReport{
			Process:    process,
			Categories: map[string]Rating{},
		}

		// Cell averages per (activity, category), grouped by category for
		// the category-level means.
		cellsByCategory := map[string][]Rating{}

		for _, rk := range rowOrder {
			if rk.process != process {
				continue
			}
			rowAnswers := rows[rk]
			row := ActivityReport{
				Process:    process,
				Activity:   rk.activity,
				ByCategory: map[string]Rating{},
				Average:    RowAverage(rowAnswers),
			}
			for _, category := range models.CategoryOrder {
				cat := string(category)
				var cell []Answer
				for _, a := range rowAnswers {
					if a.Category == cat {
						cell = append(cell, a)
					}
				}
				if len(cell) == 0 {
					continue
				}
				avg := RowAverage(cell)
				row.ByCategory[cat] = avg
				cellsByCategory[cat] = append(cellsByCategory[cat], avg)
			}
			pr.Activities = append(pr.Activities, row)
		}

		categoryAverages := []Rating{}
		for _, category := range models.CategoryOrder {
			cat := string(category)
			cells, ok := cellsByCategory[cat]
			if !ok {
				continue
			}
			avg := CategoryAverage(cells)
			pr.Categories[cat] = avg
			categoryAverages = append(categoryAverages, avg)
			if avg.Valid {
				allCategoryAverages = append(allCategoryAverages, avg)
			}
		}

		pr.Rating = ProcessRating(categoryAverages)
		report.Processes = append(report.Processes, pr)
	}

	report.FinalRate = FinalRate(allCategoryAverages)
	return report
}
