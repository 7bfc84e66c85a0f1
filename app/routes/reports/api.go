package reports

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sandrello1971/newassessment/app/config"
	"github.com/sandrello1971/newassessment/app/database"
	"github.com/sandrello1971/newassessment/app/models"
	"github.com/sandrello1971/newassessment/app/scoring"
	"github.com/sandrello1971/newassessment/app/services"
)

// GetReportAPI returns the full aggregation hierarchy: per-activity cells,
// per-process category averages and ratings, and the overall final rate.
// Averages are rounded to two decimals at this boundary only.
func GetReportAPI(c *fiber.Ctx) error {
	_, report, err := loadReport(c)
	if err != nil {
		return err
	}
	return c.JSON(roundReport(report))
}

func GetClassificationAPI(c *fiber.Ctx) error {
	_, report, err := loadReport(c)
	if err != nil {
		return err
	}
	return c.JSON(scoring.Classify(report))
}

func GetRadarAPI(c *fiber.Ctx) error {
	_, report, err := loadReport(c)
	if err != nil {
		return err
	}
	return c.JSON(scoring.Radar(report))
}

func GetParetoAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}
	store, err := loadStore(session.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load answers"})
	}
	return c.JSON(scoring.Pareto(store))
}

// DownloadReportPDFAPI renders the whole report as a PDF attachment.
func DownloadReportPDFAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}
	store, err := loadStore(session.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load answers"})
	}

	report := roundReport(scoring.Compute(store))
	pdf, err := services.GenerateReportPDF(services.ReportData{
		Session:        session,
		Report:         report,
		Classification: scoring.Classify(report),
		Pareto:         scoring.Pareto(store),
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate PDF"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="assessment_%s.pdf"`, session.ID))
	return c.Send(pdf)
}

type RecommendationsRequest struct {
	Recommendations       *string `json:"recommendations,omitempty"`
	ParetoRecommendations *string `json:"pareto_recommendations,omitempty"`
}

// SaveRecommendationsAPI stores manually edited recommendation texts.
func SaveRecommendationsAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}
	db := config.GetDB()

	var req RecommendationsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Recommendations == nil && req.ParetoRecommendations == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Nothing to save"})
	}

	if req.Recommendations != nil {
		if err := database.UpdateRecommendations(db, session.ID, *req.Recommendations); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to save recommendations"})
		}
	}
	if req.ParetoRecommendations != nil {
		if err := database.UpdateParetoRecommendations(db, session.ID, *req.ParetoRecommendations); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to save recommendations"})
		}
	}

	return c.JSON(fiber.Map{"status": "saved"})
}

// GenerateRecommendationsAPI asks the model for recommendations and stores the
// answer on the session before returning it.
func GenerateRecommendationsAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}
	db := config.GetDB()
	store, err := loadStore(session.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load answers"})
	}

	report := roundReport(scoring.Compute(store))
	text, err := services.GenerateRecommendations(c.Context(), session, report, scoring.Classify(report), scoring.Pareto(store))
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"error": "Failed to generate recommendations"})
	}

	if err := database.UpdateRecommendations(db, session.ID, text); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save recommendations"})
	}

	return c.JSON(fiber.Map{"recommendations": text})
}

func loadReport(c *fiber.Ctx) (*models.AssessmentSession, *scoring.Report, error) {
	session, err := loadSession(c)
	if err != nil {
		return nil, nil, err
	}
	store, err := loadStore(session.ID)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load answers")
	}
	return session, scoring.Compute(store), nil
}

func loadStore(sessionID string) (*scoring.Store, error) {
	stored, err := database.GetSessionResults(config.GetDB(), sessionID)
	if err != nil {
		return nil, err
	}
	return scoring.FromResults(stored), nil
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

// roundReport rounds every rating of the report to two decimals for output;
// the aggregation itself runs on unrounded values.
func roundReport(r *scoring.Report) *scoring.Report {
	for pi := range r.Processes {
		p := &r.Processes[pi]
		for ai := range p.Activities {
			a := &p.Activities[ai]
			a.Average = a.Average.Round2()
			for k, v := range a.ByCategory {
				a.ByCategory[k] = v.Round2()
			}
		}
		for k, v := range p.Categories {
			p.Categories[k] = v.Round2()
		}
		p.Rating = p.Rating.Round2()
	}
	r.FinalRate = r.FinalRate.Round2()
	return r
}
