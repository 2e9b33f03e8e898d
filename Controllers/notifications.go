package Controllers

import (
	"strconv"

	"Mydailylogs/Models"
	"Mydailylogs/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetNotifications lists the caller's notifications, newest first.
func (n *NotificationController) GetNotifications(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var notifications []Models.Notification
	err := n.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve notifications"})
	}
	return ctx.JSON(notifications)
}

// GetUnreadCount returns how many notifications are unread.
func (n *NotificationController) GetUnreadCount(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	var count int64
	err := n.DB.Model(&Models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&count).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count notifications"})
	}
	return ctx.JSON(fiber.Map{"unread": count})
}

// MarkRead flags one notification as read.
func (n *NotificationController) MarkRead(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification ID"})
	}
	result := n.DB.Model(&Models.Notification{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("is_read", true)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}
	return ctx.JSON(fiber.Map{"message": "Notification marked read"})
}

// MarkAllRead flags everything as read.
func (n *NotificationController) MarkAllRead(ctx *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(ctx)
	err := n.DB.Model(&Models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notifications"})
	}
	return ctx.JSON(fiber.Map{"message": "All notifications marked read"})
}
