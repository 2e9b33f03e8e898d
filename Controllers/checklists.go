package Controllers

import (
	"strconv"
	"time"

	"Mydailylogs/Models"
	"Mydailylogs/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ChecklistController is the staff-facing surface for working through the
// day's checklist instances.
type ChecklistController struct {
	DB *gorm.DB
}

func NewChecklistController(db *gorm.DB) *ChecklistController {
	return &ChecklistController{DB: db}
}

// GetMyChecklists lists the caller's instances for today plus anything still
// overdue.
func (c *ChecklistController) GetMyChecklists(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	today := time.Now().Format(Models.DateLayout)

	var checklists []Models.DailyChecklist
	err := c.DB.Preload("Template").
		Where("assigned_to = ? AND (date = ? OR status = ?)", user.ID, today, Models.ChecklistOverdue).
		Order("date DESC").
		Find(&checklists).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve checklists"})
	}
	return ctx.JSON(checklists)
}

// StartChecklist moves a pending instance to in_progress.
func (c *ChecklistController) StartChecklist(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid checklist ID"})
	}

	result := c.DB.Model(&Models.DailyChecklist{}).
		Where("id = ? AND assigned_to = ? AND status = ?", id, user.ID, Models.ChecklistPending).
		Update("status", Models.ChecklistInProgress)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start checklist"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No pending checklist with that ID"})
	}
	return ctx.JSON(fiber.Map{"message": "Checklist started"})
}

// CompleteChecklist finishes an instance and archives it as a submitted
// report for admin review.
func (c *ChecklistController) CompleteChecklist(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid checklist ID"})
	}

	var checklist Models.DailyChecklist
	err = c.DB.Preload("Template").
		Where("assigned_to = ?", user.ID).
		First(&checklist, id).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Checklist not found"})
	}
	if checklist.Status == Models.ChecklistCompleted {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Checklist is already completed"})
	}

	now := time.Now()
	err = c.DB.Transaction(func(tx *gorm.DB) error {
		checklist.Status = Models.ChecklistCompleted
		checklist.CompletedAt = &now
		if err := tx.Save(&checklist).Error; err != nil {
			return err
		}
		report := Models.SubmittedReport{
			OrganizationID: checklist.OrganizationID,
			TemplateID:     checklist.TemplateID,
			ChecklistID:    checklist.ID,
			SubmittedBy:    user.ID,
			SubmittedAt:    now,
			Status:         Models.ReportSubmitted,
			TemplateTitle:  checklist.Template.Title,
		}
		return tx.Create(&report).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete checklist"})
	}
	return ctx.JSON(checklist)
}
