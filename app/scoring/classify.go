package scoring

import "sort"

// Tier buckets a row average into the report's strength/weakness bands.
type Tier string

const (
	TierCritical Tier = "critical"
	TierWeakness Tier = "weakness"
	TierNeutral  Tier = "neutral"
	TierStrength Tier = "strength"
)

// Threshold bands. Critical takes everything up to and including 1.00,
// weakness everything above 1.00 and below 2.00, strength everything from
// 3.00 up. The band between 2.00 and 3.00 is neutral and never flagged.
// These constants are the single source of truth; call sites must not carry
// their own copies.
const (
	CriticalMax = 1.0
	WeaknessMax = 2.0
	StrengthMin = 3.0
)

// ClassifyAverage buckets one average. ok is false for an undefined average:
// a fully not-applicable row belongs to no tier, it must never fall into
// critical through a null-as-zero slip.
func ClassifyAverage(avg Rating) (Tier, bool) {
	if !avg.Valid {
		return "", false
	}
	switch {
	case avg.Value <= CriticalMax:
		return TierCritical, true
	case avg.Value < WeaknessMax:
		return TierWeakness, true
	case avg.Value < StrengthMin:
		return TierNeutral, true
	default:
		return TierStrength, true
	}
}

// Classification groups the rows of a report into the three flagged tiers.
// Neutral rows and undefined rows appear in none of them.
type Classification struct {
	Strengths  []ActivityReport `json:"strengths"`
	Weaknesses []ActivityReport `json:"weaknesses"`
	Critical   []ActivityReport `json:"critical"`
}

// Classify buckets every row of the report and sorts each bucket by process
// name, then by the row's own average: ascending for critical and weakness
// (worst first), descending for strength (best first). Ties keep insertion
// order.
func Classify(report *Report) *Classification {
	c := &Classification{}
	for _, pr := range report.Processes {
		for _, row := range pr.Activities {
			tier, ok := ClassifyAverage(row.Average)
			if !ok {
				continue
			}
			switch tier {
			case TierStrength:
				c.Strengths = append(c.Strengths, row)
			case TierWeakness:
				c.Weaknesses = append(c.Weaknesses, row)
			case TierCritical:
				c.Critical = append(c.Critical, row)
			}
		}
	}
	sortBucket(c.Critical, true)
	sortBucket(c.Weaknesses, true)
	sortBucket(c.Strengths, false)
	return c
}

func sortBucket(rows []ActivityReport, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Process != rows[j].Process {
			return rows[i].Process < rows[j].Process
		}
		if ascending {
			return rows[i].Average.Value < rows[j].Average.Value
		}
		return rows[i].Average.Value > rows[j].Average.Value
	})
}
