package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrello1971/newassessment/app/models"
	"github.com/sandrello1971/newassessment/app/scoring"
)

func TestGenerateReportPDF(t *testing.T) {
	intp := func(v int) *int { return &v }
	store := scoring.NewStore()
	store.Set(scoring.Key{Process: "Design", Activity: "CAD", Category: "Technology", Dimension: "D1"}, scoring.Update{Score: intp(4)})
	store.Set(scoring.Key{Process: "Design", Activity: "CAD", Category: "Governance", Dimension: "D1"}, scoring.Update{Score: intp(1)})

	report := scoring.Compute(store)
	recommendations := "Invest in PLM integration."

	data := ReportData{
		Session: &models.AssessmentSession{
			ID:              "00000000-0000-0000-0000-000000000001",
			CompanyName:     "ACME Srl",
			Recommendations: &recommendations,
		},
		Report:         report,
		Classification: scoring.Classify(report),
		Pareto:         scoring.Pareto(store),
	}

	pdf, err := GenerateReportPDF(data)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
