package Controllers

import (
	"strconv"
	"strings"
	"time"

	"Mydailylogs/Models"
	"Mydailylogs/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type registerInput struct {
	OrganizationName string `json:"organization_name" validate:"required,min=2,max=255"`
	Name             string `json:"name" validate:"required,min=2,max=255"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
}

// Register creates an organization, its admin user and a trial subscription.
func (a *AuthController) Register(ctx *fiber.Ctx) error {
	var input registerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	trialEnd := time.Now().AddDate(0, 0, 14)
	org := Models.Organization{
		Name:       input.OrganizationName,
		Slug:       slugify(input.OrganizationName),
		OwnerEmail: input.Email,
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		user := Models.User{
			OrganizationID: org.ID,
			Name:           input.Name,
			Email:          input.Email,
			Password:       hashed,
			Role:           Models.RoleAdmin,
			IsActive:       true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		sub := Models.Subscription{
			OrganizationID: org.ID,
			PlanName:       Models.PlanPro,
			Status:         Models.SubscriptionActive,
			IsTrial:        true,
			TrialEndsAt:    &trialEnd,
		}
		return tx.Create(&sub).Error
	})
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "unique constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An account with this email already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":         "Account created",
		"organization_id": org.ID,
	})
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks credentials and sets the jwt session cookie.
func (a *AuthController) Login(ctx *fiber.Ctx) error {
	var input loginInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	var user Models.User
	if err := a.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Incorrect email or password"})
	}
	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(input.Password)); err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Incorrect email or password"})
	}
	if !user.IsActive {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Account is deactivated"})
	}

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(user.ID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTSecret())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not log in"})
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
	})
	return ctx.JSON(fiber.Map{
		"message": "Logged in",
		"user":    user,
	})
}

// Logout clears the session cookie.
func (a *AuthController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return ctx.JSON(fiber.Map{"message": "Logged out"})
}

type deviceInput struct {
	FCMToken string `json:"fcm_token" validate:"required,max=200"`
}

// RegisterDevice stores the caller's FCM device token so notifications can
// be mirrored as push messages.
func (a *AuthController) RegisterDevice(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}
	var input deviceInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	err := a.DB.Model(&Models.User{}).Where("id = ?", user.ID).
		Update("fcm_token", input.FCMToken).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save device token"})
	}
	return ctx.JSON(fiber.Map{"message": "Device registered"})
}

// Me returns the authenticated user.
func (a *AuthController) Me(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}
	return ctx.JSON(user)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, slug)
	return strings.Trim(slug, "-")
}
