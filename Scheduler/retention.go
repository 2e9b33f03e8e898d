package Scheduler

import (
	"fmt"
	"log"
	"time"

	"Mydailylogs/Models"
)

// PurgeOldReports hard-deletes submitted reports older than each
// organization's plan retention window (30 days on starter, 90 on paid
// tiers). Every organization is purged against its own tier.
func (e *Engine) PurgeOldReports(today time.Time) (int, error) {
	var orgs []Models.Organization
	if err := e.DB.Find(&orgs).Error; err != nil {
		return 0, fmt.Errorf("fetch organizations: %w", err)
	}

	total := 0
	for _, org := range orgs {
		features := Models.FeaturesForOrganization(e.DB, org.ID)
		cutoff := today.AddDate(0, 0, -features.ReportRetentionDays)

		result := e.DB.Unscoped().
			Where("organization_id = ? AND submitted_at < ?", org.ID, cutoff).
			Delete(&Models.SubmittedReport{})
		if result.Error != nil {
			log.Printf("Report purge failed for organization %d: %v", org.ID, result.Error)
			continue
		}
		total += int(result.RowsAffected)
	}
	return total, nil
}

// AutoCancelAssignments deactivates one-off assignments whose scheduled date
// or deadline is already in the past. Each schedule type is a single bulk
// update; a failure in one does not stop the other.
func (e *Engine) AutoCancelAssignments(today time.Time) (int, error) {
	todayStr := today.Format(Models.DateLayout)
	cancelled := 0
	var firstErr error

	result := e.DB.Model(&Models.TemplateAssignment{}).
		Where("schedule_type = ? AND specific_date != ? AND specific_date < ? AND is_active = ?",
			Models.ScheduleSpecificDate, "", todayStr, true).
		Updates(map[string]interface{}{
			"is_active": false,
			"status":    Models.AssignmentCancelled,
		})
	if result.Error != nil {
		log.Printf("Auto-cancel of specific-date assignments failed: %v", result.Error)
		firstErr = result.Error
	} else {
		cancelled += int(result.RowsAffected)
	}

	result = e.DB.Model(&Models.TemplateAssignment{}).
		Where("schedule_type = ? AND deadline_date != ? AND deadline_date < ? AND is_active = ?",
			Models.ScheduleDeadline, "", todayStr, true).
		Updates(map[string]interface{}{
			"is_active": false,
			"status":    Models.AssignmentCancelled,
		})
	if result.Error != nil {
		log.Printf("Auto-cancel of deadline assignments failed: %v", result.Error)
		if firstErr == nil {
			firstErr = result.Error
		}
	} else {
		cancelled += int(result.RowsAffected)
	}

	return cancelled, firstErr
}
