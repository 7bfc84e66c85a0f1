package scoring

import "github.com/sandrello1971/newassessment/app/models"

// ProcessVector is one radar series: a process's four category averages. An
// undefined average is rendered as 0 here, purely for chart geometry; the
// substitution never feeds back into aggregation.
type ProcessVector struct {
	Process string             `json:"process"`
	Domains map[string]float64 `json:"domains"`
}

// DomainVector is the inverted projection: one category across processes.
type DomainVector struct {
	Domain    string             `json:"domain"`
	Processes map[string]float64 `json:"processes"`
}

// RadarData carries both radar orientations for the chart layer.
type RadarData struct {
	ProcessesVsDomains []ProcessVector `json:"processes_vs_domains"`
	DomainsVsProcesses []DomainVector  `json:"domains_vs_processes"`
}

// Radar projects a report onto the two radar orientations.
func Radar(report *Report) *RadarData {
	data := &RadarData{}

	for _, pr := range report.Processes {
		vec := ProcessVector{Process: pr.Process, Domains: map[string]float64{}}
		for _, category := range models.CategoryOrder {
			vec.Domains[string(category)] = chartValue(pr.Categories[string(category)])
		}
		data.ProcessesVsDomains = append(data.ProcessesVsDomains, vec)
	}

	for _, category := range models.CategoryOrder {
		vec := DomainVector{Domain: string(category), Processes: map[string]float64{}}
		for _, pr := range report.Processes {
			vec.Processes[pr.Process] = chartValue(pr.Categories[string(category)])
		}
		data.DomainsVsProcesses = append(data.DomainsVsProcesses, vec)
	}

	return data
}

func chartValue(r Rating) float64 {
	if !r.Valid {
		return 0
	}
	return r.Round2().Value
}
