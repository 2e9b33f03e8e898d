package Scheduler

import (
	"fmt"
	"log"
	"time"

	"Mydailylogs/Models"
)

// GenerateInstances materializes today's checklist instances. For every
// active recurring template with at least one active assignment it applies,
// in order: the plan entitlement gate, the cadence decision (business hours,
// holidays, per-template exclusions, recurrence type) and then per-assignee
// gates (unavailability, duplicate). Individual failures are collected as
// strings so the stage always completes.
func (e *Engine) GenerateInstances(today time.Time) (created, skipped int, errs []string) {
	var templates []Models.ChecklistTemplate
	err := e.DB.
		Preload("Assignments", "is_active = ?", true).
		Preload("Exclusion").
		Where("is_recurring = ? AND is_active = ? AND recurrence_type IN ?",
			true, true, Models.SupportedRecurrenceTypes).
		Find(&templates).Error
	if err != nil {
		log.Printf("Failed to fetch recurring templates: %v", err)
		return 0, 0, nil
	}

	// Organization-level lookups are cached across templates: one run touches
	// each org's subscription, holidays and business hours once.
	features := map[uint]Models.PlanFeatures{}
	dayCtx := map[uint]*orgDayContext{}

	for i := range templates {
		tpl := &templates[i]
		if len(tpl.Assignments) == 0 {
			continue
		}

		feats, ok := features[tpl.OrganizationID]
		if !ok {
			feats = Models.FeaturesForOrganization(e.DB, tpl.OrganizationID)
			features[tpl.OrganizationID] = feats
		}
		if !feats.TaskAutomation {
			skipped++
			continue
		}

		octx, ok := dayCtx[tpl.OrganizationID]
		if !ok {
			octx = e.loadOrgDayContext(tpl.OrganizationID, today)
			dayCtx[tpl.OrganizationID] = octx
		}

		if !shouldRunToday(tpl, octx, today) {
			continue
		}

		for _, assignment := range tpl.Assignments {
			unavailable, err := e.staffUnavailable(assignment.AssignedTo, today)
			if err != nil {
				errs = append(errs, fmt.Sprintf("template %d assignee %d: unavailability check: %v",
					tpl.ID, assignment.AssignedTo, err))
				continue
			}
			if unavailable {
				continue
			}

			// Duplicate gate: re-running the job on the same day must not
			// produce a second instance for the same (template, assignee, date).
			var existing int64
			err = e.DB.Model(&Models.DailyChecklist{}).
				Where("template_id = ? AND assigned_to = ? AND date = ?",
					tpl.ID, assignment.AssignedTo, today.Format(Models.DateLayout)).
				Count(&existing).Error
			if err != nil {
				errs = append(errs, fmt.Sprintf("template %d assignee %d: duplicate check: %v",
					tpl.ID, assignment.AssignedTo, err))
				continue
			}
			if existing > 0 {
				continue
			}

			instance := Models.DailyChecklist{
				TemplateID:     tpl.ID,
				AssignedTo:     assignment.AssignedTo,
				OrganizationID: tpl.OrganizationID,
				Date:           today.Format(Models.DateLayout),
				Status:         Models.ChecklistPending,
			}
			if err := e.DB.Create(&instance).Error; err != nil {
				errs = append(errs, fmt.Sprintf("template %d assignee %d: create instance: %v",
					tpl.ID, assignment.AssignedTo, err))
				continue
			}
			created++
		}
	}
	return created, skipped, errs
}

// orgDayContext caches what one organization looks like on one day.
type orgDayContext struct {
	closedToday bool
	holidays    []Models.Holiday
}

func (e *Engine) loadOrgDayContext(orgID uint, today time.Time) *orgDayContext {
	octx := &orgDayContext{}

	var hours Models.BusinessHours
	err := e.DB.Where("organization_id = ? AND day_of_week = ?", orgID, int(today.Weekday())).
		First(&hours).Error
	// No row means the organization never configured hours; treat as open.
	if err == nil && !hours.IsOpen {
		octx.closedToday = true
	}

	if err := e.DB.Where("organization_id = ?", orgID).Find(&octx.holidays).Error; err != nil {
		log.Printf("Holiday lookup failed for organization %d: %v", orgID, err)
	}
	return octx
}

// shouldRunToday is the cadence decision for one template. The gates
// short-circuit in a fixed order: business hours, organization holidays
// (a blackout independent of the template's own exclusion settings), the
// template's exclusion policy, then the recurrence-type rule anchored on the
// template's creation timestamp.
func shouldRunToday(tpl *Models.ChecklistTemplate, octx *orgDayContext, today time.Time) bool {
	if octx.closedToday {
		return false
	}

	for i := range octx.holidays {
		if octx.holidays[i].MatchesDate(today) {
			return false
		}
	}

	if tpl.Exclusion != nil {
		weekday := today.Weekday()
		if tpl.Exclusion.ExcludeWeekends && (weekday == time.Saturday || weekday == time.Sunday) {
			return false
		}
		todayStr := today.Format(Models.DateLayout)
		for _, excluded := range tpl.Exclusion.DatesList() {
			if excluded == todayStr {
				return false
			}
		}
	}

	switch tpl.RecurrenceType {
	case Models.RecurrenceDaily:
		return true
	case Models.RecurrenceWeekdays:
		weekday := today.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	case Models.RecurrenceWeekly:
		return today.Weekday() == tpl.CreatedAt.Weekday()
	case Models.RecurrenceMonthly:
		return today.Day() == tpl.CreatedAt.Day()
	}
	return false
}

func (e *Engine) staffUnavailable(userID uint, today time.Time) (bool, error) {
	todayStr := today.Format(Models.DateLayout)
	var count int64
	err := e.DB.Model(&Models.StaffUnavailability{}).
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, todayStr, todayStr).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
