package Scheduler

import (
	"fmt"
	"log"
	"time"

	"Mydailylogs/Models"
)

// ExpireTrials downgrades every trial subscription whose trial window has
// closed to the starter plan and emails the organization owner. The email is
// best effort: a send failure never rolls back the downgrade.
func (e *Engine) ExpireTrials(now time.Time) (int, error) {
	var expired []Models.Subscription
	err := e.DB.Where("is_trial = ? AND status = ? AND trial_ends_at < ?",
		true, Models.SubscriptionActive, now).
		Find(&expired).Error
	if err != nil {
		return 0, fmt.Errorf("fetch expired trials: %w", err)
	}

	downgraded := 0
	for i := range expired {
		sub := &expired[i]
		sub.PlanName = Models.PlanStarter
		sub.IsTrial = false
		sub.IsMasterAdminTrial = false
		sub.TrialEndsAt = nil
		sub.CurrentPeriodStart = nil
		sub.CurrentPeriodEnd = nil

		// Select forces the cleared pointer columns back to NULL.
		if err := e.DB.Model(sub).
			Select("PlanName", "IsTrial", "IsMasterAdminTrial", "TrialEndsAt", "CurrentPeriodStart", "CurrentPeriodEnd").
			Updates(sub).Error; err != nil {
			log.Printf("Failed to downgrade subscription %d: %v", sub.ID, err)
			continue
		}
		downgraded++

		var org Models.Organization
		if err := e.DB.First(&org, sub.OrganizationID).Error; err != nil {
			log.Printf("Owner lookup failed for organization %d: %v", sub.OrganizationID, err)
			continue
		}
		if org.OwnerEmail == "" {
			continue
		}
		subject := "Your Mydailylogs trial has ended"
		body := trialEndedBody(org.Name)
		if err := e.Notifier.SendEmail(org.OwnerEmail, subject, body); err != nil {
			log.Printf("Trial-ended email to %s failed: %v", org.OwnerEmail, err)
		}
	}
	return downgraded, nil
}

func trialEndedBody(orgName string) string {
	return fmt.Sprintf(
		`<h2>Trial ended</h2>
<p>The trial period for <strong>%s</strong> has ended and the account has been moved to the Starter plan.</p>
<p>Recurring checklist automation is paused on Starter. Upgrade at any time from the billing page to switch it back on.</p>`,
		orgName)
}
