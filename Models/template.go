package Models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recurrence types supported by the daily generation job. A template with
// IsRecurring set must carry one of the first four; everything else is "none".
const (
	RecurrenceDaily    = "daily"
	RecurrenceWeekdays = "weekdays"
	RecurrenceWeekly   = "weekly"
	RecurrenceMonthly  = "monthly"
	RecurrenceNone     = "none"
)

// SupportedRecurrenceTypes is the set the generation job iterates over.
var SupportedRecurrenceTypes = []string{RecurrenceDaily, RecurrenceWeekdays, RecurrenceWeekly, RecurrenceMonthly}

// ChecklistTemplate is a reusable checklist definition. CreatedAt doubles as
// the anchor for weekly/monthly cadence (same weekday / same day-of-month).
type ChecklistTemplate struct {
	gorm.Model
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	Title          string `json:"title" gorm:"size:255;not null"`
	Description    string `json:"description" gorm:"type:text"`
	IsRecurring    bool   `json:"is_recurring"`
	RecurrenceType string `json:"recurrence_type" gorm:"size:20;default:none"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`

	Assignments []TemplateAssignment `json:"assignments,omitempty" gorm:"foreignKey:TemplateID"`
	Exclusion   *TemplateExclusion   `json:"exclusion,omitempty" gorm:"foreignKey:TemplateID"`
}

// TemplateExclusion holds the optional per-template blackout settings applied
// during generation only. ExcludedDates is a JSON array of YYYY-MM-DD strings.
type TemplateExclusion struct {
	gorm.Model
	TemplateID      uint           `json:"template_id" gorm:"uniqueIndex;not null"`
	ExcludeHolidays bool           `json:"exclude_holidays"`
	ExcludeWeekends bool           `json:"exclude_weekends"`
	ExcludedDates   datatypes.JSON `json:"excluded_dates"`
}

// DatesList decodes ExcludedDates; a malformed or empty column yields nil.
func (x *TemplateExclusion) DatesList() []string {
	if len(x.ExcludedDates) == 0 {
		return nil
	}
	var dates []string
	if err := json.Unmarshal(x.ExcludedDates, &dates); err != nil {
		return nil
	}
	return dates
}

// SetDatesList encodes the given dates into the JSON column.
func (x *TemplateExclusion) SetDatesList(dates []string) error {
	raw, err := json.Marshal(dates)
	if err != nil {
		return err
	}
	x.ExcludedDates = datatypes.JSON(raw)
	return nil
}
