package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aryanpatel3011/localseva_be/internal/models"
)

type NotificationHandler struct {
	DB *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{DB: db}
}

func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var notifs []models.Notification
	if err := h.DB.
		Where("user_id = ?", userUUID).
		Order("created_at DESC").
		Find(&notifs).Error; err != nil {

		return fail500(c, "Failed to fetch notifications")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    notifs,
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	if err := h.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Params("id"), userUUID).
		Update("is_read", true).Error; err != nil {

		return fail500(c, "Failed to mark notification as read")
	}

	return c.JSON(fiber.Map{"success": true})
}
