package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportSubmitted = "submitted"
	ReportReviewed  = "reviewed"
)

// SubmittedReport is the archived record created when a staff member
// completes a checklist. Old reports are purged nightly once they exceed the
// organization's plan retention window.
type SubmittedReport struct {
	gorm.Model
	OrganizationID uint      `json:"organization_id" gorm:"index;not null"`
	TemplateID     uint      `json:"template_id" gorm:"index"`
	ChecklistID    uint      `json:"checklist_id"`
	SubmittedBy    uint      `json:"submitted_by" gorm:"index"`
	SubmittedAt    time.Time `json:"submitted_at" gorm:"index"`
	Status         string    `json:"status" gorm:"size:20;default:submitted"`
	TemplateTitle  string    `json:"template_title" gorm:"size:255"`
	ShareToken     string    `json:"share_token" gorm:"uniqueIndex;size:36"`
}

// BeforeCreate assigns the public share token.
func (r *SubmittedReport) BeforeCreate(tx *gorm.DB) error {
	if r.ShareToken == "" {
		r.ShareToken = uuid.NewString()
	}
	return nil
}

// Notification is an in-app message for one user, written by the scheduler
// sweeps and by admin actions. Delivery is a plain table read, no push.
type Notification struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"index;not null"`
	OrganizationID uint   `json:"organization_id" gorm:"index"`
	Type           string `json:"type" gorm:"size:40"`
	Title          string `json:"title" gorm:"size:255"`
	Message        string `json:"message" gorm:"type:text"`
	IsRead         bool   `json:"is_read" gorm:"default:false"`
}
