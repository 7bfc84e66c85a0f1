package reports

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlersRejectInvalidSessionID(t *testing.T) {
	app := fiber.New()
	app.Get("/report/:id", GetReportAPI)
	app.Get("/classification/:id", GetClassificationAPI)
	app.Get("/radar/:id", GetRadarAPI)
	app.Get("/pareto/:id", GetParetoAPI)
	app.Get("/report/:id/pdf", DownloadReportPDFAPI)
	app.Post("/recommendations/:id", SaveRecommendationsAPI)
	app.Post("/recommendations/:id/generate", GenerateRecommendationsAPI)

	cases := []struct{ method, path string }{
		{"GET", "/report/not-a-uuid"},
		{"GET", "/classification/not-a-uuid"},
		{"GET", "/radar/not-a-uuid"},
		{"GET", "/pareto/not-a-uuid"},
		{"GET", "/report/not-a-uuid/pdf"},
		{"POST", "/recommendations/not-a-uuid"},
		{"POST", "/recommendations/not-a-uuid/generate"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err, "%s %s", tc.method, tc.path)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}
