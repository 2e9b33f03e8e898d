package Controllers

import (
	"Mydailylogs/Models"
	"Mydailylogs/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubscriptionController exposes the organization's current plan state and
// the feature flags the entitlement resolver derives from it.
type SubscriptionController struct {
	DB *gorm.DB
}

func NewSubscriptionController(db *gorm.DB) *SubscriptionController {
	return &SubscriptionController{DB: db}
}

// GetSubscription returns the subscription row plus resolved features.
func (s *SubscriptionController) GetSubscription(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)

	var sub Models.Subscription
	err := s.DB.Where("organization_id = ?", user.OrganizationID).First(&sub).Error
	if err != nil {
		// No row: the org runs on the starter defaults.
		return ctx.JSON(fiber.Map{
			"subscription": nil,
			"features":     Models.PlanFor(Models.PlanStarter),
		})
	}
	return ctx.JSON(fiber.Map{
		"subscription": sub,
		"features":     Models.FeaturesForOrganization(s.DB, user.OrganizationID),
	})
}
