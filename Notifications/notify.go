package Notifications

import (
	"fmt"
	"log"

	"Mydailylogs/Models"
	"Mydailylogs/email"

	"gorm.io/gorm"
)

// Service persists in-app notifications and sends transactional email. It is
// the production implementation of the scheduler's Notifier. Both paths are
// fire-and-forget from the caller's point of view.
type Service struct {
	DB    *gorm.DB
	Email Models.EmailConfig
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:    db,
		Email: Models.LoadEmailConfig(),
	}
}

// NotifyUser writes one in-app notification row.
func (s *Service) NotifyUser(userID, orgID uint, notifType, title, message string) error {
	notification := Models.Notification{
		UserID:         userID,
		OrganizationID: orgID,
		Type:           notifType,
		Title:          title,
		Message:        message,
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	// Push delivery is best effort on top of the stored row.
	var user Models.User
	if err := s.DB.First(&user, userID).Error; err == nil {
		if err := sendPush(user.FCMToken, notifType, title, message); err != nil {
			log.Printf("Push notification to user %d failed: %v", userID, err)
		}
	}
	return nil
}

// SendEmail delivers one HTML email. When SMTP is not configured the message
// is dropped with a log line instead of an error, so unconfigured
// environments never poison the callers' sweeps.
func (s *Service) SendEmail(to, subject, body string) error {
	if !s.Email.Configured() {
		log.Printf("SMTP not configured, dropping email to %s (%s)", to, subject)
		return nil
	}
	return email.Send(s.Email, Models.EmailMessage{
		To:      []string{to},
		Subject: subject,
		Body:    body,
		IsHTML:  true,
	})
}
