package results

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sandrello1971/newassessment/app/config"
	"github.com/sandrello1971/newassessment/app/database"
	"github.com/sandrello1971/newassessment/app/models"
	"github.com/sandrello1971/newassessment/app/scoring"
)

type AnswerPayload struct {
	Process         string  `json:"process" validate:"required"`
	Activity        string  `json:"activity" validate:"required"`
	Category        string  `json:"category" validate:"required"`
	Dimension       string  `json:"dimension" validate:"required"`
	Score           *int    `json:"score,omitempty" validate:"omitempty,gte=0,lte=5"`
	Note            *string `json:"note,omitempty"`
	IsNotApplicable *bool   `json:"is_not_applicable,omitempty"`
}

type SubmitRequest struct {
	Answers []AnswerPayload `json:"answers" validate:"required,min=1,dive"`
}

// SubmitResultsAPI applies a batch of answer updates to a session. Fields left
// out of a payload keep their stored value, so re-submitting the same batch
// changes nothing. The whole batch is applied in one transaction; on failure
// the stored answers are untouched.
func SubmitResultsAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}
	db := config.GetDB()
	if session.IsClosed() {
		return c.Status(409).JSON(fiber.Map{"error": "Session is closed"})
	}

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	for _, a := range req.Answers {
		if !models.IsValidCategory(a.Category) {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown category: " + a.Category})
		}
	}

	stored, err := database.GetSessionResults(db, session.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load answers"})
	}
	store := scoring.FromResults(stored)
	for _, a := range req.Answers {
		store.Set(scoring.Key{
			Process:   a.Process,
			Activity:  a.Activity,
			Category:  a.Category,
			Dimension: a.Dimension,
		}, scoring.Update{
			Score:           a.Score,
			Note:            a.Note,
			IsNotApplicable: a.IsNotApplicable,
		})
	}

	merged := toResults(session.ID, store.All())
	if err := database.UpsertResults(db, session.ID, merged); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save answers"})
	}

	return c.JSON(fiber.Map{"status": "saved", "answers": len(merged)})
}

// toResults flattens the in-memory answer set back into storable rows. The
// hidden value behind a not-applicable answer survives the round trip.
func toResults(sessionID string, answers []scoring.Answer) []*models.AssessmentResult {
	out := make([]*models.AssessmentResult, 0, len(answers))
	for _, a := range answers {
		r := &models.AssessmentResult{
			SessionID:       sessionID,
			Process:         a.Key.Process,
			Activity:        a.Key.Activity,
			Category:        a.Key.Category,
			Dimension:       a.Key.Dimension,
			Note:            a.Note,
			IsNotApplicable: a.Score.IsNotApplicable(),
		}
		r.Score = a.Score.RetainedValue()
		out = append(out, r)
	}
	return out
}

type ResultRow struct {
	*models.AssessmentResult
	ProcessRating scoring.Rating `json:"process_rating"`
}

// GetResultsAPI lists the session's answers. When the session points at a
// template version, rows follow the template's question order; otherwise the
// insertion order is kept. Each row carries the rating of its process.
func GetResultsAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}
	db := config.GetDB()

	stored, err := database.GetSessionResults(db, session.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load answers"})
	}

	if session.TemplateVersionID != nil {
		questions, err := database.GetVersionQuestions(db, *session.TemplateVersionID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to load template questions"})
		}
		stored = orderByQuestions(stored, questions)
	}

	report := scoring.Compute(scoring.FromResults(stored))
	ratings := make(map[string]scoring.Rating, len(report.Processes))
	for _, p := range report.Processes {
		ratings[p.Process] = p.Rating.Round2()
	}

	rows := make([]ResultRow, 0, len(stored))
	for _, r := range stored {
		rows = append(rows, ResultRow{AssessmentResult: r, ProcessRating: ratings[r.Process]})
	}
	return c.JSON(rows)
}

// orderByQuestions sorts rows into the template's question order; answers with
// no matching question (imported or legacy rows) trail in stored order.
func orderByQuestions(rows []*models.AssessmentResult, questions []*models.Question) []*models.AssessmentResult {
	type identity struct{ process, activity, category, dimension string }

	pos := make(map[identity]int, len(questions))
	for i, q := range questions {
		pos[identity{q.Process, q.Activity, q.Category, q.Dimension}] = i
	}

	ordered := make([]*models.AssessmentResult, len(questions))
	var trailing []*models.AssessmentResult
	for _, r := range rows {
		if i, ok := pos[identity{r.Process, r.Activity, r.Category, r.Dimension}]; ok && ordered[i] == nil {
			ordered[i] = r
		} else {
			trailing = append(trailing, r)
		}
	}

	out := make([]*models.AssessmentResult, 0, len(rows))
	for _, r := range ordered {
		if r != nil {
			out = append(out, r)
		}
	}
	return append(out, trailing...)
}

// GetStatsAPI returns answer-count and percentage statistics per process and
// per category, on a 0-100 scale.
func GetStatsAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}

	stored, err := database.GetSessionResults(config.GetDB(), session.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load answers"})
	}

	return c.JSON(scoring.Stats(scoring.FromResults(stored)))
}

// loadSession resolves the :id parameter to a session. Failures come back as
// *fiber.Error so the app error handler renders them; the returned error is
// never nil when the session is.
func loadSession(c *fiber.Ctx) (*models.AssessmentSession, error) {
	sessionID := c.Params("id")
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	session, err := database.GetSessionByID(config.GetDB(), sessionID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch session")
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return session, nil
}
