package Controllers

import (
	"strconv"

	"Mydailylogs/Models"
	"Mydailylogs/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AssignmentController handles template-to-staff assignments.
type AssignmentController struct {
	DB *gorm.DB
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{DB: db}
}

type assignmentInput struct {
	TemplateID   uint   `json:"template_id" validate:"required"`
	AssignedTo   uint   `json:"assigned_to" validate:"required"`
	ScheduleType string `json:"schedule_type" validate:"omitempty,oneof=specific_date deadline"`
	SpecificDate string `json:"specific_date" validate:"omitempty,datetime=2006-01-02"`
	DeadlineDate string `json:"deadline_date" validate:"omitempty,datetime=2006-01-02"`
}

// CreateAssignment binds a template to a staff member. One-off schedule
// types need their matching date field.
func (a *AssignmentController) CreateAssignment(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var input assignmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}
	if input.ScheduleType == Models.ScheduleSpecificDate && input.SpecificDate == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "specific_date is required for this schedule type"})
	}
	if input.ScheduleType == Models.ScheduleDeadline && input.DeadlineDate == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "deadline_date is required for this schedule type"})
	}

	var template Models.ChecklistTemplate
	if err := a.DB.Where("organization_id = ?", user.OrganizationID).First(&template, input.TemplateID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	var assignee Models.User
	if err := a.DB.Where("organization_id = ? AND is_active = ?", user.OrganizationID, true).
		First(&assignee, input.AssignedTo).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	assignment := Models.TemplateAssignment{
		TemplateID:     template.ID,
		AssignedTo:     assignee.ID,
		AssignedBy:     user.ID,
		OrganizationID: user.OrganizationID,
		IsActive:       true,
		Status:         Models.AssignmentActive,
		ScheduleType:   input.ScheduleType,
		SpecificDate:   input.SpecificDate,
		DeadlineDate:   input.DeadlineDate,
	}
	if err := a.DB.Create(&assignment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create assignment"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(assignment)
}

// GetAssignmentsByTemplate lists assignments on one template.
func (a *AssignmentController) GetAssignmentsByTemplate(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	templateID, err := strconv.Atoi(ctx.Params("template_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}
	var assignments []Models.TemplateAssignment
	err = a.DB.Preload("Assignee").
		Where("template_id = ? AND organization_id = ?", templateID, user.OrganizationID).
		Find(&assignments).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve assignments"})
	}
	return ctx.JSON(assignments)
}

// GetMyAssignments lists the caller's own active assignments.
func (a *AssignmentController) GetMyAssignments(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var assignments []Models.TemplateAssignment
	err := a.DB.Preload("Template").
		Where("assigned_to = ? AND is_active = ?", user.ID, true).
		Find(&assignments).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve assignments"})
	}
	return ctx.JSON(assignments)
}

// CancelAssignment deactivates an assignment so generation stops picking it up.
func (a *AssignmentController) CancelAssignment(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignment ID"})
	}
	result := a.DB.Model(&Models.TemplateAssignment{}).
		Where("id = ? AND organization_id = ?", id, user.OrganizationID).
		Updates(map[string]interface{}{
			"is_active": false,
			"status":    Models.AssignmentCancelled,
		})
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel assignment"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}
	return ctx.JSON(fiber.Map{"message": "Assignment cancelled"})
}
