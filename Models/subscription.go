package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PlanStarter = "starter"
	PlanGrowth  = "growth"
	PlanPro     = "pro"
)

const (
	SubscriptionActive    = "active"
	SubscriptionPastDue   = "past_due"
	SubscriptionCancelled = "cancelled"
)

// Subscription is the per-organization plan state. The payment processor ids
// are bookkeeping only; the scheduler never talks to the processor.
type Subscription struct {
	gorm.Model
	OrganizationID       uint       `json:"organization_id" gorm:"uniqueIndex;not null"`
	PlanName             string     `json:"plan_name" gorm:"size:40;default:starter"`
	Status               string     `json:"status" gorm:"size:20;default:active"`
	IsTrial              bool       `json:"is_trial"`
	IsMasterAdminTrial   bool       `json:"is_masteradmin_trial" gorm:"column:is_masteradmin_trial"`
	TrialEndsAt          *time.Time `json:"trial_ends_at"`
	CurrentPeriodStart   *time.Time `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	StripeCustomerID     string     `json:"stripe_customer_id" gorm:"size:120"`
	StripeSubscriptionID string     `json:"stripe_subscription_id" gorm:"size:120"`
}

// PlanFeatures are the feature flags and limits a plan grants.
type PlanFeatures struct {
	TaskAutomation      bool `json:"task_automation"`
	PhotoUploads        bool `json:"photo_uploads"`
	MaxStaff            int  `json:"max_staff"`
	MaxTemplates        int  `json:"max_templates"`
	ReportRetentionDays int  `json:"report_retention_days"`
}

var planTable = map[string]PlanFeatures{
	PlanStarter: {
		TaskAutomation:      false,
		PhotoUploads:        false,
		MaxStaff:            5,
		MaxTemplates:        3,
		ReportRetentionDays: 30,
	},
	PlanGrowth: {
		TaskAutomation:      true,
		PhotoUploads:        false,
		MaxStaff:            25,
		MaxTemplates:        25,
		ReportRetentionDays: 90,
	},
	PlanPro: {
		TaskAutomation:      true,
		PhotoUploads:        true,
		MaxStaff:            100,
		MaxTemplates:        200,
		ReportRetentionDays: 90,
	},
}

// PlanFor resolves a plan name to its features, falling back to starter.
func PlanFor(name string) PlanFeatures {
	if features, ok := planTable[name]; ok {
		return features
	}
	return planTable[PlanStarter]
}

// FeaturesForOrganization resolves the current entitlements of an
// organization. A missing subscription row, or one that is not active,
// degrades to the starter plan rather than erroring.
func FeaturesForOrganization(db *gorm.DB, orgID uint) PlanFeatures {
	var sub Subscription
	if err := db.Where("organization_id = ?", orgID).First(&sub).Error; err != nil {
		return PlanFor(PlanStarter)
	}
	if sub.Status != SubscriptionActive {
		return PlanFor(PlanStarter)
	}
	return PlanFor(sub.PlanName)
}
