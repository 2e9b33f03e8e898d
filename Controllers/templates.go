package Controllers

import (
	"strconv"

	"Mydailylogs/Models"
	"Mydailylogs/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TemplateController handles checklist template endpoints.
type TemplateController struct {
	DB *gorm.DB
}

func NewTemplateController(db *gorm.DB) *TemplateController {
	return &TemplateController{DB: db}
}

type templateInput struct {
	Title          string `json:"title" validate:"required,min=2,max=255"`
	Description    string `json:"description"`
	IsRecurring    bool   `json:"is_recurring"`
	RecurrenceType string `json:"recurrence_type" validate:"omitempty,oneof=daily weekdays weekly monthly none"`
}

// GetTemplates lists the organization's templates with assignments.
func (t *TemplateController) GetTemplates(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var templates []Models.ChecklistTemplate
	err := t.DB.Preload("Assignments").Preload("Exclusion").
		Where("organization_id = ?", user.OrganizationID).
		Find(&templates).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve templates"})
	}
	return ctx.JSON(templates)
}

// GetTemplate retrieves one template by id, organization-scoped.
func (t *TemplateController) GetTemplate(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}
	var template Models.ChecklistTemplate
	err = t.DB.Preload("Assignments").Preload("Exclusion").
		Where("organization_id = ?", user.OrganizationID).
		First(&template, id).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	return ctx.JSON(template)
}

// CreateTemplate creates a template, enforcing the plan's template limit. A
// recurring template must carry a supported recurrence type.
func (t *TemplateController) CreateTemplate(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var input templateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}
	if input.IsRecurring && !isSupportedRecurrence(input.RecurrenceType) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A recurring template needs a recurrence type of daily, weekdays, weekly or monthly",
		})
	}

	features := Models.FeaturesForOrganization(t.DB, user.OrganizationID)
	var count int64
	t.DB.Model(&Models.ChecklistTemplate{}).
		Where("organization_id = ?", user.OrganizationID).Count(&count)
	if int(count) >= features.MaxTemplates {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Template limit for the current plan reached",
		})
	}

	recurrence := input.RecurrenceType
	if !input.IsRecurring {
		recurrence = Models.RecurrenceNone
	}
	template := Models.ChecklistTemplate{
		OrganizationID: user.OrganizationID,
		Title:          input.Title,
		Description:    input.Description,
		IsRecurring:    input.IsRecurring,
		RecurrenceType: recurrence,
		IsActive:       true,
	}
	if err := t.DB.Create(&template).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create template"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(template)
}

// UpdateTemplate edits title, description and recurrence settings.
func (t *TemplateController) UpdateTemplate(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}

	var template Models.ChecklistTemplate
	if err := t.DB.Where("organization_id = ?", user.OrganizationID).First(&template, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	var input templateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}
	if input.IsRecurring && !isSupportedRecurrence(input.RecurrenceType) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A recurring template needs a recurrence type of daily, weekdays, weekly or monthly",
		})
	}

	template.Title = input.Title
	template.Description = input.Description
	template.IsRecurring = input.IsRecurring
	if input.IsRecurring {
		template.RecurrenceType = input.RecurrenceType
	} else {
		template.RecurrenceType = Models.RecurrenceNone
	}
	if err := t.DB.Save(&template).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update template"})
	}
	return ctx.JSON(template)
}

// SetActive toggles whether the generation job considers the template.
func (t *TemplateController) SetActive(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}
	var input struct {
		IsActive bool `json:"is_active"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := t.DB.Model(&Models.ChecklistTemplate{}).
		Where("id = ? AND organization_id = ?", id, user.OrganizationID).
		Update("is_active", input.IsActive)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update template"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	return ctx.JSON(fiber.Map{"message": "Template updated"})
}

// DeleteTemplate removes a template and its assignments.
func (t *TemplateController) DeleteTemplate(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}

	var template Models.ChecklistTemplate
	if err := t.DB.Where("organization_id = ?", user.OrganizationID).First(&template, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	err = t.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", template.ID).Delete(&Models.TemplateAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", template.ID).Delete(&Models.TemplateExclusion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&template).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete template"})
	}
	return ctx.JSON(fiber.Map{"message": "Template deleted"})
}

func isSupportedRecurrence(recurrenceType string) bool {
	for _, supported := range Models.SupportedRecurrenceTypes {
		if recurrenceType == supported {
			return true
		}
	}
	return false
}
