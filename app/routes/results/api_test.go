package results

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrello1971/newassessment/app/models"
)

func TestHandlersRejectInvalidSessionID(t *testing.T) {
	app := fiber.New()
	app.Post("/submit/:id", SubmitResultsAPI)
	app.Get("/results/:id", GetResultsAPI)
	app.Get("/stats/:id", GetStatsAPI)

	cases := []struct{ method, path string }{
		{"POST", "/submit/not-a-uuid"},
		{"GET", "/results/not-a-uuid"},
		{"GET", "/stats/not-a-uuid"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err, "%s %s", tc.method, tc.path)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func question(process, activity, category, dimension string) *models.Question {
	return &models.Question{Process: process, Activity: activity, Category: category, Dimension: dimension}
}

func result(process, activity, category, dimension string) *models.AssessmentResult {
	return &models.AssessmentResult{Process: process, Activity: activity, Category: category, Dimension: dimension}
}

func TestOrderByQuestionsFollowsTemplateOrder(t *testing.T) {
	questions := []*models.Question{
		question("Design", "CAD", "Governance", "D1"),
		question("Design", "CAD", "Technology", "D1"),
		question("Logistics", "Warehouse", "Governance", "D1"),
	}
	// Stored rows come back in identity order, not template order.
	rows := []*models.AssessmentResult{
		result("Logistics", "Warehouse", "Governance", "D1"),
		result("Design", "CAD", "Technology", "D1"),
		result("Design", "CAD", "Governance", "D1"),
	}

	ordered := orderByQuestions(rows, questions)

	require.Len(t, ordered, 3)
	assert.Equal(t, "Governance", ordered[0].Category)
	assert.Equal(t, "Design", ordered[0].Process)
	assert.Equal(t, "Technology", ordered[1].Category)
	assert.Equal(t, "Logistics", ordered[2].Process)
}

func TestOrderByQuestionsTrailsUnmatchedRows(t *testing.T) {
	questions := []*models.Question{
		question("Design", "CAD", "Governance", "D1"),
	}
	rows := []*models.AssessmentResult{
		result("Legacy", "Import", "Technology", "D9"),
		result("Design", "CAD", "Governance", "D1"),
		result("Legacy", "Import", "Governance", "D9"),
	}

	ordered := orderByQuestions(rows, questions)

	require.Len(t, ordered, 3)
	assert.Equal(t, "Design", ordered[0].Process)
	// Unmatched rows trail in their stored order.
	assert.Equal(t, "Technology", ordered[1].Category)
	assert.Equal(t, "Governance", ordered[2].Category)
}

func TestOrderByQuestionsKeepsDuplicateIdentities(t *testing.T) {
	questions := []*models.Question{
		question("Design", "CAD", "Governance", "D1"),
	}
	first := result("Design", "CAD", "Governance", "D1")
	first.Note = "first"
	second := result("Design", "CAD", "Governance", "D1")
	second.Note = "second"

	ordered := orderByQuestions([]*models.AssessmentResult{first, second}, questions)

	// The first row claims the template slot, the duplicate trails; nothing
	// is dropped.
	require.Len(t, ordered, 2)
	assert.Equal(t, "first", ordered[0].Note)
	assert.Equal(t, "second", ordered[1].Note)
}
