package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sandrello1971/newassessment/app/config"
	"github.com/sandrello1971/newassessment/app/database"
	"github.com/sandrello1971/newassessment/app/models"
)

type CreateSessionRequest struct {
	CompanyName       string  `json:"company_name" validate:"required"`
	Sector            *string `json:"sector,omitempty"`
	CompanySize       *string `json:"company_size,omitempty"`
	ContactPerson     *string `json:"contact_person,omitempty"`
	PerformedBy       *string `json:"performed_by,omitempty"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	TemplateVersionID *string `json:"template_version_id,omitempty" validate:"omitempty,uuid"`
	TemplateCode      *string `json:"template_code,omitempty"`
}

// CreateSessionAPI creates a session and prepopulates one default answer per
// question of the chosen template version, so every question has exactly one
// answer before the user edits anything.
func CreateSessionAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	version, err := resolveTemplateVersion(req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	userID, _ := c.Locals("user_id").(string)
	session := &models.AssessmentSession{
		CompanyName:       req.CompanyName,
		Sector:            req.Sector,
		CompanySize:       req.CompanySize,
		ContactPerson:     req.ContactPerson,
		PerformedBy:       req.PerformedBy,
		Email:             req.Email,
		TemplateVersionID: &version.ID,
	}
	if userID != "" {
		session.UserID = &userID
	}

	if err := database.CreateSession(db, session); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create session"})
	}

	questions, err := database.GetVersionQuestions(db, version.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load template questions"})
	}
	if err := database.PrepopulateAnswers(db, session.ID, questions); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to prepopulate answers"})
	}

	return c.Status(201).JSON(session)
}

// resolveTemplateVersion picks the version a new session will run against:
// an explicit version id, an explicit template code, or the default template.
func resolveTemplateVersion(req CreateSessionRequest) (*models.TemplateVersion, error) {
	db := config.GetDB()

	if req.TemplateVersionID != nil {
		version, err := database.GetTemplateVersion(db, *req.TemplateVersionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load template version")
		}
		if version == nil {
			return nil, fmt.Errorf("template version not found")
		}
		if version.IsDeprecated {
			return nil, fmt.Errorf("template version is deprecated")
		}
		return version, nil
	}

	code := config.GetEnv("DEFAULT_TEMPLATE_CODE", "i40_assessment_fto")
	if req.TemplateCode != nil {
		code = *req.TemplateCode
	}
	template, err := database.GetTemplateByCode(db, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load template")
	}
	if template == nil {
		return nil, fmt.Errorf("template %q not found", code)
	}
	version, err := database.GetActiveTemplateVersion(db, template.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active template version")
	}
	if version == nil {
		return nil, fmt.Errorf("template %q has no active version", code)
	}
	return version, nil
}

func ListSessionsAPI(c *fiber.Ctx) error {
	sessions, err := database.ListSessions(config.GetDB(), c.Query("user_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}
	if sessions == nil {
		sessions = []*models.AssessmentSession{}
	}
	return c.JSON(sessions)
}

func GetSessionAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// CloseSessionAPI stamps the completion time; closing an already closed
// session is a no-op.
func CloseSessionAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}
	if err := database.CloseSession(config.GetDB(), session.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to close session"})
	}
	return c.JSON(fiber.Map{"status": "closed", "session_id": session.ID})
}

// DeleteSessionAPI hard-deletes a session with all of its results. Admin-only.
func DeleteSessionAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}

	deleted, err := database.DeleteSession(config.GetDB(), session.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete session"})
	}

	return c.JSON(fiber.Map{
		"status":          "deleted",
		"session_id":      session.ID,
		"deleted_results": deleted,
	})
}

// UploadLogoAPI stores a company logo next to the session for report headers.
func UploadLogoAPI(c *fiber.Ctx) error {
	session, err := loadSession(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "logo file is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg":
	default:
		return c.Status(400).JSON(fiber.Map{"error": "logo must be a .png or .jpg file"})
	}

	uploadDir := config.AppConfig.UploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to prepare upload directory"})
	}

	logoPath := filepath.Join(uploadDir, fmt.Sprintf("logo_%s%s", session.ID, ext))
	if err := c.SaveFile(file, logoPath); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save logo"})
	}

	if err := database.UpdateSessionLogo(config.GetDB(), session.ID, logoPath); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save logo path"})
	}

	return c.JSON(fiber.Map{"status": "uploaded", "logo_path": logoPath})
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
