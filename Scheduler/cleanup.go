package Scheduler

import (
	"fmt"
	"log"
	"time"

	"Mydailylogs/Models"
)

// Grace windows in days before an overdue instance is deleted, keyed by
// recurrence type. Each window spans until the next scheduled occurrence plus
// one day, so a missed instance survives as the "current" actionable one
// until the following occurrence would naturally supersede it.
var overdueGraceDays = map[string]int{
	Models.RecurrenceDaily:    2,
	Models.RecurrenceWeekdays: 4,
	Models.RecurrenceWeekly:   8,
	Models.RecurrenceMonthly:  32,
}

// One-off checklists have no next occurrence; they go on the first sweep
// after turning overdue.
const (
	oneOffGraceDays  = 0
	defaultGraceDays = 2
)

type overdueRow struct {
	ID             uint
	TemplateID     uint
	AssignedTo     uint
	OrganizationID uint
	Date           string
	TemplateTitle  string
	IsRecurring    bool
	RecurrenceType string
	AssigneeName   string
}

// CleanupOverdue deletes overdue instances that have exceeded their grace
// window and notifies every admin of the owning organization about each
// deletion. Notification failures are logged only; they never block other
// admins or rows and never reach the run summary.
func (e *Engine) CleanupOverdue(today time.Time) int {
	var rows []overdueRow
	err := e.DB.Table("daily_checklists").
		Select(`daily_checklists.id, daily_checklists.template_id, daily_checklists.assigned_to,
			daily_checklists.organization_id, daily_checklists.date,
			checklist_templates.title AS template_title, checklist_templates.is_recurring,
			checklist_templates.recurrence_type, users.name AS assignee_name`).
		Joins("JOIN checklist_templates ON checklist_templates.id = daily_checklists.template_id").
		Joins("JOIN users ON users.id = daily_checklists.assigned_to").
		Where("daily_checklists.status = ? AND daily_checklists.deleted_at IS NULL", Models.ChecklistOverdue).
		Scan(&rows).Error
	if err != nil {
		log.Printf("Failed to fetch overdue checklists: %v", err)
		return 0
	}

	var doomed []overdueRow
	for _, row := range rows {
		if daysSince(row.Date, today) >= graceDaysFor(row) {
			doomed = append(doomed, row)
		}
	}
	if len(doomed) == 0 {
		return 0
	}

	ids := make([]uint, len(doomed))
	for i, row := range doomed {
		ids[i] = row.ID
	}
	// Unscoped: the row must actually go away so the occurrence index frees up.
	if err := e.DB.Unscoped().Delete(&Models.DailyChecklist{}, ids).Error; err != nil {
		log.Printf("Failed to delete %d overdue checklists: %v", len(ids), err)
		return 0
	}

	for _, row := range doomed {
		e.notifyAdminsOfDeletion(row)
	}
	return len(doomed)
}

func (e *Engine) notifyAdminsOfDeletion(row overdueRow) {
	admins, err := Models.AdminsForOrganization(e.DB, row.OrganizationID)
	if err != nil {
		log.Printf("Admin lookup for checklist %d deletion notice failed: %v", row.ID, err)
		return
	}
	title := "Overdue checklist removed"
	message := fmt.Sprintf("The checklist %q assigned to %s (due %s) was removed because it stayed overdue past its grace period.",
		row.TemplateTitle, row.AssigneeName, row.Date)
	for _, admin := range admins {
		if err := e.Notifier.NotifyUser(admin.ID, row.OrganizationID, "checklist_removed", title, message); err != nil {
			log.Printf("Deletion notice for checklist %d to admin %d failed: %v", row.ID, admin.ID, err)
		}
	}
}

func graceDaysFor(row overdueRow) int {
	if !row.IsRecurring || row.RecurrenceType == Models.RecurrenceNone || row.RecurrenceType == "" {
		return oneOffGraceDays
	}
	if days, ok := overdueGraceDays[row.RecurrenceType]; ok {
		return days
	}
	return defaultGraceDays
}

// daysSince counts whole calendar days from a YYYY-MM-DD date up to today.
// Both ends are pinned to UTC midnight so the caller's zone cannot shave a
// day off. An unparseable date counts as ancient so the row is cleaned up
// rather than lingering forever.
func daysSince(date string, today time.Time) int {
	parsed, err := time.Parse(Models.DateLayout, date)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	from := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
