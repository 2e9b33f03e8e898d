package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ChecklistPending    = "pending"
	ChecklistInProgress = "in_progress"
	ChecklistCompleted  = "completed"
	ChecklistOverdue    = "overdue"
)

// DateLayout is the day-granularity format used on every calendar-date column.
const DateLayout = "2006-01-02"

// DailyChecklist is one concrete occurrence of a template for one assignee on
// one calendar date. The composite unique index backs the duplicate gate in
// the generation job: at most one row per (template, assignee, date).
type DailyChecklist struct {
	gorm.Model
	TemplateID     uint       `json:"template_id" gorm:"not null;uniqueIndex:idx_checklist_occurrence"`
	AssignedTo     uint       `json:"assigned_to" gorm:"not null;uniqueIndex:idx_checklist_occurrence"`
	OrganizationID uint       `json:"organization_id" gorm:"index;not null"`
	Date           string     `json:"date" gorm:"size:10;not null;uniqueIndex:idx_checklist_occurrence"` // YYYY-MM-DD
	Status         string     `json:"status" gorm:"size:20;default:pending"`
	CompletedAt    *time.Time `json:"completed_at"`

	Template ChecklistTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	Assignee User              `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
}

func (DailyChecklist) TableName() string {
	return "daily_checklists"
}
