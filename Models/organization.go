package Models

import (
	"gorm.io/gorm"
)

// Organization is the tenant root. Every schedulable record hangs off one.
type Organization struct {
	gorm.Model
	Name       string `json:"name" gorm:"size:255;not null"`
	Slug       string `json:"slug" gorm:"uniqueIndex;size:120"`
	OwnerEmail string `json:"owner_email" gorm:"size:190"`
	Phone      string `json:"phone" gorm:"size:40"`
	LogoURL    string `json:"logo_url"`

	Users []User `json:"users,omitempty" gorm:"foreignKey:OrganizationID"`
}

type User struct {
	gorm.Model
	OrganizationID uint   `json:"organization_id" gorm:"index"`
	Name           string `json:"name" gorm:"size:255"`
	Email          string `json:"email" gorm:"uniqueIndex;size:190"`
	Password       []byte `json:"-"`
	Role           string `json:"role" gorm:"size:20;default:staff"` // admin or staff
	Position       string `json:"position" gorm:"size:120"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
	FCMToken       string `json:"-" gorm:"size:200"` // device token for push delivery
}

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// AdminsForOrganization returns the active admin profiles of an organization.
func AdminsForOrganization(db *gorm.DB, orgID uint) ([]User, error) {
	var admins []User
	err := db.Where("organization_id = ? AND role = ? AND is_active = ?", orgID, RoleAdmin, true).
		Find(&admins).Error
	return admins, err
}
