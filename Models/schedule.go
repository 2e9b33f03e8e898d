package Models

import (
	"time"

	"gorm.io/gorm"
)

// Holiday is an organization-wide blackout date. Recurring holidays repeat
// yearly on the same month and day.
type Holiday struct {
	gorm.Model
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	Date           string `json:"date" gorm:"size:10;not null"` // YYYY-MM-DD
	Name           string `json:"name" gorm:"size:255"`
	IsRecurring    bool   `json:"is_recurring"`
}

// MatchesDate reports whether the holiday blacks out the given day.
func (h *Holiday) MatchesDate(day time.Time) bool {
	parsed, err := time.Parse(DateLayout, h.Date)
	if err != nil {
		return false
	}
	if h.IsRecurring {
		return parsed.Month() == day.Month() && parsed.Day() == day.Day()
	}
	return h.Date == day.Format(DateLayout)
}

// StaffUnavailability is a leave window for one staff member. While a day
// falls inside it, generation skips that assignee only.
type StaffUnavailability struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"index;not null"`
	OrganizationID uint   `json:"organization_id" gorm:"index"`
	StartDate      string `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate        string `json:"end_date" gorm:"size:10;not null"`   // YYYY-MM-DD
	Reason         string `json:"reason" gorm:"size:255"`
}

// BusinessHours marks whether an organization operates on a given weekday.
// DayOfWeek follows time.Weekday: 0 = Sunday through 6 = Saturday. A missing
// row counts as open.
type BusinessHours struct {
	gorm.Model
	OrganizationID uint   `json:"organization_id" gorm:"index;not null;uniqueIndex:idx_org_weekday"`
	DayOfWeek      int    `json:"day_of_week" gorm:"not null;uniqueIndex:idx_org_weekday"`
	IsOpen         bool   `json:"is_open" gorm:"default:true"`
	OpensAt        string `json:"opens_at" gorm:"size:5"`  // HH:MM
	ClosesAt       string `json:"closes_at" gorm:"size:5"` // HH:MM
}
