package templates

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlersRejectInvalidIDs(t *testing.T) {
	app := fiber.New()
	app.Get("/templates/:id", GetTemplateAPI)
	app.Get("/templates/:id/versions", ListVersionsAPI)
	app.Post("/templates/:id/import", ImportVersionAPI)
	app.Get("/versions/:version_id/questions", GetVersionQuestionsAPI)
	app.Post("/versions/:version_id/deprecate", DeprecateVersionAPI)
	app.Post("/versions/:version_id/questions", AddQuestionAPI)
	app.Delete("/questions/:question_id", DeactivateQuestionAPI)

	cases := []struct{ method, path string }{
		{"GET", "/templates/not-a-uuid"},
		{"GET", "/templates/not-a-uuid/versions"},
		{"POST", "/templates/not-a-uuid/import"},
		{"GET", "/versions/not-a-uuid/questions"},
		{"POST", "/versions/not-a-uuid/deprecate"},
		{"POST", "/versions/not-a-uuid/questions"},
		{"DELETE", "/questions/not-a-uuid"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err, "%s %s", tc.method, tc.path)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}
