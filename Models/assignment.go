package Models

import (
	"gorm.io/gorm"
)

// Schedule types for non-recurring assignments. Empty means no one-off date,
// the assignment just follows the template's recurrence.
const (
	ScheduleSpecificDate = "specific_date"
	ScheduleDeadline     = "deadline"
)

const (
	AssignmentActive    = "active"
	AssignmentCancelled = "cancelled"
	AssignmentCompleted = "completed"
)

// TemplateAssignment binds a template to a staff member. Only active
// assignments are eligible for instance generation; the nightly auto-cancel
// deactivates one-off assignments whose date has lapsed.
type TemplateAssignment struct {
	gorm.Model
	TemplateID     uint   `json:"template_id" gorm:"index;not null"`
	AssignedTo     uint   `json:"assigned_to" gorm:"index;not null"`
	AssignedBy     uint   `json:"assigned_by"`
	OrganizationID uint   `json:"organization_id" gorm:"index"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
	Status         string `json:"status" gorm:"size:20;default:active"`
	ScheduleType   string `json:"schedule_type" gorm:"size:20"`
	SpecificDate   string `json:"specific_date" gorm:"size:10"` // YYYY-MM-DD
	DeadlineDate   string `json:"deadline_date" gorm:"size:10"` // YYYY-MM-DD

	Template ChecklistTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	Assignee User              `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
}
