package Controllers

import (
	"strconv"

	"Mydailylogs/Models"
	"Mydailylogs/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ScheduleController manages the records the generation job consults:
// holidays, staff unavailability, business hours and per-template exclusions.
type ScheduleController struct {
	DB *gorm.DB
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db}
}

// ---- Holidays ----

type holidayInput struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Name        string `json:"name" validate:"required,max=255"`
	IsRecurring bool   `json:"is_recurring"`
}

func (s *ScheduleController) GetHolidays(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var holidays []Models.Holiday
	if err := s.DB.Where("organization_id = ?", user.OrganizationID).Order("date").Find(&holidays).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve holidays"})
	}
	return ctx.JSON(holidays)
}

func (s *ScheduleController) CreateHoliday(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var input holidayInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	holiday := Models.Holiday{
		OrganizationID: user.OrganizationID,
		Date:           input.Date,
		Name:           input.Name,
		IsRecurring:    input.IsRecurring,
	}
	if err := s.DB.Create(&holiday).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create holiday"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(holiday)
}

func (s *ScheduleController) DeleteHoliday(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid holiday ID"})
	}
	result := s.DB.Where("organization_id = ?", user.OrganizationID).Delete(&Models.Holiday{}, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete holiday"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Holiday not found"})
	}
	return ctx.JSON(fiber.Map{"message": "Holiday deleted"})
}

// ---- Staff unavailability ----

type unavailabilityInput struct {
	UserID    uint   `json:"user_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02,gtefield=StartDate"`
	Reason    string `json:"reason" validate:"max=255"`
}

func (s *ScheduleController) GetUnavailability(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var windows []Models.StaffUnavailability
	if err := s.DB.Where("organization_id = ?", user.OrganizationID).Order("start_date").Find(&windows).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve unavailability"})
	}
	return ctx.JSON(windows)
}

func (s *ScheduleController) CreateUnavailability(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var input unavailabilityInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	var staff Models.User
	if err := s.DB.Where("organization_id = ?", user.OrganizationID).First(&staff, input.UserID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	window := Models.StaffUnavailability{
		UserID:         staff.ID,
		OrganizationID: user.OrganizationID,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Reason:         input.Reason,
	}
	if err := s.DB.Create(&window).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create unavailability"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(window)
}

func (s *ScheduleController) DeleteUnavailability(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid unavailability ID"})
	}
	result := s.DB.Where("organization_id = ?", user.OrganizationID).Delete(&Models.StaffUnavailability{}, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete unavailability"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unavailability not found"})
	}
	return ctx.JSON(fiber.Map{"message": "Unavailability deleted"})
}

// ---- Business hours ----

type businessHoursInput struct {
	Days []struct {
		DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
		IsOpen    bool   `json:"is_open"`
		OpensAt   string `json:"opens_at"`
		ClosesAt  string `json:"closes_at"`
	} `json:"days" validate:"required,dive"`
}

func (s *ScheduleController) GetBusinessHours(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var hours []Models.BusinessHours
	if err := s.DB.Where("organization_id = ?", user.OrganizationID).Order("day_of_week").Find(&hours).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve business hours"})
	}
	return ctx.JSON(hours)
}

// PutBusinessHours replaces the organization's weekly map in one call.
func (s *ScheduleController) PutBusinessHours(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var input businessHoursInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("organization_id = ?", user.OrganizationID).
			Delete(&Models.BusinessHours{}).Error; err != nil {
			return err
		}
		for _, day := range input.Days {
			row := Models.BusinessHours{
				OrganizationID: user.OrganizationID,
				DayOfWeek:      day.DayOfWeek,
				IsOpen:         day.IsOpen,
				OpensAt:        day.OpensAt,
				ClosesAt:       day.ClosesAt,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save business hours"})
	}
	return ctx.JSON(fiber.Map{"message": "Business hours saved"})
}

// ---- Template exclusions ----

type exclusionInput struct {
	ExcludeHolidays bool     `json:"exclude_holidays"`
	ExcludeWeekends bool     `json:"exclude_weekends"`
	ExcludedDates   []string `json:"excluded_dates" validate:"dive,datetime=2006-01-02"`
}

// PutExclusion upserts the exclusion policy for one template.
func (s *ScheduleController) PutExclusion(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	templateID, err := strconv.Atoi(ctx.Params("template_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}

	var template Models.ChecklistTemplate
	if err := s.DB.Where("organization_id = ?", user.OrganizationID).First(&template, templateID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	var input exclusionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	var exclusion Models.TemplateExclusion
	err = s.DB.Where("template_id = ?", template.ID).First(&exclusion).Error
	if err != nil {
		exclusion = Models.TemplateExclusion{TemplateID: template.ID}
	}
	exclusion.ExcludeHolidays = input.ExcludeHolidays
	exclusion.ExcludeWeekends = input.ExcludeWeekends
	if err := exclusion.SetDatesList(input.ExcludedDates); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid excluded dates"})
	}

	if err := s.DB.Save(&exclusion).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save exclusion policy"})
	}
	return ctx.JSON(exclusion)
}
