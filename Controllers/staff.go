package Controllers

import (
	"strconv"
	"strings"

	"Mydailylogs/Models"
	"Mydailylogs/middleware"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StaffController manages the organization's staff profiles.
type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

type staffInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin staff"`
	Position string `json:"position" validate:"max=120"`
}

// GetStaff lists the organization's users.
func (s *StaffController) GetStaff(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var staff []Models.User
	if err := s.DB.Where("organization_id = ?", user.OrganizationID).Find(&staff).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve staff"})
	}
	return ctx.JSON(staff)
}

// CreateStaff adds a user, enforcing the plan's staff limit.
func (s *StaffController) CreateStaff(ctx *fiber.Ctx) error {
	admin, _ := middleware.CurrentUser(ctx)
	var input staffInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	features := Models.FeaturesForOrganization(s.DB, admin.OrganizationID)
	var count int64
	s.DB.Model(&Models.User{}).
		Where("organization_id = ?", admin.OrganizationID).Count(&count)
	if int(count) >= features.MaxStaff {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Staff limit for the current plan reached",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}
	role := input.Role
	if role == "" {
		role = Models.RoleStaff
	}
	staff := Models.User{
		OrganizationID: admin.OrganizationID,
		Name:           input.Name,
		Email:          input.Email,
		Password:       hashed,
		Role:           role,
		Position:       input.Position,
		IsActive:       true,
	}
	if err := s.DB.Create(&staff).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "unique constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A user with this email already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create staff member"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(staff)
}

// SetStaffActive toggles a profile. Deactivated staff keep their history but
// drop out of generation through their cancelled assignments.
func (s *StaffController) SetStaffActive(ctx *fiber.Ctx) error {
	admin, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	var input struct {
		IsActive bool `json:"is_active"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := s.DB.Model(&Models.User{}).
		Where("id = ? AND organization_id = ?", id, admin.OrganizationID).
		Update("is_active", input.IsActive)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update staff member"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	// Cancelling the assignments stops instance generation for them.
	if !input.IsActive {
		s.DB.Model(&Models.TemplateAssignment{}).
			Where("assigned_to = ? AND is_active = ?", id, true).
			Updates(map[string]interface{}{
				"is_active": false,
				"status":    Models.AssignmentCancelled,
			})
	}
	return ctx.JSON(fiber.Map{"message": "Staff member updated"})
}
