package scoring

// GroupStats summarizes one process or domain on a 0-100 scale, as consumed
// by the dashboard completion widgets.
type GroupStats struct {
	AverageScore float64 `json:"average_score"`
	TotalScore   int     `json:"total_score"`
	MaxScore     int     `json:"max_score"`
	Count        int     `json:"count"`
	NACount      int     `json:"na_count"`
}

// SessionStats is the headline completion summary of one session.
type SessionStats struct {
	TotalQuestions       int                   `json:"total_questions"`
	AnsweredQuestions    int                   `json:"answered_questions"`
	NAQuestions          int                   `json:"na_questions"`
	CompletionPercentage float64               `json:"completion_percentage"`
	ByProcess            map[string]GroupStats `json:"by_process"`
	ByDomain             map[string]GroupStats `json:"by_domain"`
	OverallScore         float64               `json:"overall_score"`
	OverallMaxScore      int                   `json:"overall_max_score"`
}

// Stats computes the completion summary. Percent figures here relate score
// sums to the 5-per-question maximum; they are display statistics, separate
// from the Rating hierarchy.
func Stats(store *Store) *SessionStats {
	answers := store.All()

	stats := &SessionStats{
		TotalQuestions: len(answers),
		ByProcess:      map[string]GroupStats{},
		ByDomain:       map[string]GroupStats{},
	}

	totalScore, totalMax := 0, 0
	for _, a := range answers {
		v, applicable := a.Score.Value()
		if applicable {
			stats.AnsweredQuestions++
			totalScore += v
			totalMax += 5
		} else {
			stats.NAQuestions++
		}
		accumulate(stats.ByProcess, a.Process, v, applicable)
		accumulate(stats.ByDomain, a.Category, v, applicable)
	}

	if stats.TotalQuestions > 0 {
		stats.CompletionPercentage = round2(float64(stats.AnsweredQuestions) / float64(stats.TotalQuestions) * 100)
	}
	if totalMax > 0 {
		stats.OverallScore = round2(float64(totalScore) / float64(totalMax) * 100)
	}
	stats.OverallMaxScore = totalMax

	for name, g := range stats.ByProcess {
		stats.ByProcess[name] = finalize(g)
	}
	for name, g := range stats.ByDomain {
		stats.ByDomain[name] = finalize(g)
	}
	return stats
}

func accumulate(groups map[string]GroupStats, name string, v int, applicable bool) {
	g := groups[name]
	if applicable {
		g.TotalScore += v
		g.MaxScore += 5
		g.Count++
	} else {
		g.NACount++
	}
	groups[name] = g
}

func finalize(g GroupStats) GroupStats {
	if g.MaxScore > 0 {
		g.AverageScore = round2(float64(g.TotalScore) / float64(g.MaxScore) * 100)
	}
	return g
}
