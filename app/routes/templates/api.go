package templates

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sandrello1971/newassessment/app/config"
	"github.com/sandrello1971/newassessment/app/database"
	"github.com/sandrello1971/newassessment/app/models"
	"github.com/sandrello1971/newassessment/app/services"
)

type CreateTemplateRequest struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Sector      *string `json:"sector,omitempty"`
}

func CreateTemplateAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	var req CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	existing, err := database.GetTemplateByCode(db, req.Code)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check template code"})
	}
	if existing != nil {
		return c.Status(409).JSON(fiber.Map{"error": "Template code already exists"})
	}

	template := &models.AssessmentTemplate{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Sector:      req.Sector,
		IsActive:    true,
	}
	if err := database.CreateTemplate(db, template); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create template"})
	}
	return c.Status(201).JSON(template)
}

func ListTemplatesAPI(c *fiber.Ctx) error {
	templates, err := database.ListTemplates(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch templates"})
	}
	if templates == nil {
		templates = []*models.AssessmentTemplate{}
	}
	return c.JSON(templates)
}

func GetTemplateAPI(c *fiber.Ctx) error {
	template, err := loadTemplate(c)
	if err != nil {
		return err
	}

	versions, err := database.ListTemplateVersions(config.GetDB(), template.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch versions"})
	}
	template.Versions = versions
	return c.JSON(template)
}

// ImportVersionAPI uploads an .xlsx questionnaire and creates a new template
// version from it. The import is all-or-nothing: a bad row rejects the whole
// workbook and no version is created with partial content.
func ImportVersionAPI(c *fiber.Ctx) error {
	template, err := loadTemplate(c)
	if err != nil {
		return err
	}
	db := config.GetDB()

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "questionnaire file is required"})
	}
	src, err := file.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to open uploaded file"})
	}
	defer src.Close()

	version, err := database.CreateTemplateVersion(db, template.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create template version"})
	}

	questions, err := services.ParseQuestionnaire(src, version.ID)
	if err != nil {
		// Withdraw the just-created version so a failed import leaves no
		// empty active version behind.
		_ = database.DeprecateTemplateVersion(db, version.ID)
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if err := database.AddQuestions(db, questions); err != nil {
		_ = database.DeprecateTemplateVersion(db, version.ID)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save questions"})
	}

	version.Questions = questions
	return c.Status(201).JSON(version)
}

func ListVersionsAPI(c *fiber.Ctx) error {
	template, err := loadTemplate(c)
	if err != nil {
		return err
	}
	versions, err := database.ListTemplateVersions(config.GetDB(), template.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch versions"})
	}
	if versions == nil {
		versions = []*models.TemplateVersion{}
	}
	return c.JSON(versions)
}

func GetVersionQuestionsAPI(c *fiber.Ctx) error {
	version, err := loadVersion(c)
	if err != nil {
		return err
	}
	questions, err := database.GetVersionQuestions(config.GetDB(), version.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch questions"})
	}
	if questions == nil {
		questions = []*models.Question{}
	}
	return c.JSON(questions)
}

// DeprecateVersionAPI marks a version deprecated. Existing sessions keep
// pointing at it; new sessions can no longer select it.
func DeprecateVersionAPI(c *fiber.Ctx) error {
	version, err := loadVersion(c)
	if err != nil {
		return err
	}
	if err := database.DeprecateTemplateVersion(config.GetDB(), version.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to deprecate version"})
	}
	return c.JSON(fiber.Map{"status": "deprecated", "version_id": version.ID})
}

type AddQuestionRequest struct {
	Process   string  `json:"process" validate:"required"`
	Activity  string  `json:"activity" validate:"required"`
	Category  string  `json:"category" validate:"required"`
	Dimension string  `json:"dimension" validate:"required"`
	HelpText  *string `json:"help_text,omitempty"`
	SortOrder int     `json:"sort_order" validate:"gte=0"`
}

func AddQuestionAPI(c *fiber.Ctx) error {
	version, err := loadVersion(c)
	if err != nil {
		return err
	}

	var req AddQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if !models.IsValidCategory(req.Category) {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown category: " + req.Category})
	}

	question := &models.Question{
		VersionID: version.ID,
		Process:   req.Process,
		Activity:  req.Activity,
		Category:  req.Category,
		Dimension: req.Dimension,
		HelpText:  req.HelpText,
		SortOrder: req.SortOrder,
		Weight:    1.0,
		IsActive:  true,
	}
	if err := database.AddQuestion(config.GetDB(), question); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add question"})
	}
	return c.Status(201).JSON(question)
}

func DeactivateQuestionAPI(c *fiber.Ctx) error {
	questionID := c.Params("question_id")
	if _, err := uuid.Parse(questionID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid question id"})
	}
	if err := database.DeactivateQuestion(config.GetDB(), questionID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to deactivate question"})
	}
	return c.JSON(fiber.Map{"status": "deactivated", "question_id": questionID})
}

// loadTemplate and loadVersion resolve path parameters to entities. Failures
// come back as *fiber.Error so the app error handler renders them; the
// returned error is never nil when the entity is.
func loadTemplate(c *fiber.Ctx) (*models.AssessmentTemplate, error) {
	templateID := c.Params("id")
	if _, err := uuid.Parse(templateID); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid template id")
	}

	template, err := database.GetTemplateByID(config.GetDB(), templateID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch template")
	}
	if template == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Template not found")
	}
	return template, nil
}

func loadVersion(c *fiber.Ctx) (*models.TemplateVersion, error) {
	versionID := c.Params("version_id")
	if _, err := uuid.Parse(versionID); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid version id")
	}

	version, err := database.GetTemplateVersion(config.GetDB(), versionID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch version")
	}
	if version == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Version not found")
	}
	return version, nil
}
