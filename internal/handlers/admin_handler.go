package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aryanpatel3011/localseva_be/internal/models"
	"github.com/aryanpatel3011/localseva_be/internal/realtime"
)

type AdminHandler struct {
	DB  *gorm.DB
	Hub *realtime.Hub
	RDB *redis.Client
}

func NewAdminHandler(db *gorm.DB, hub *realtime.Hub, rdb *redis.Client) *AdminHandler {
	return &AdminHandler{DB: db, Hub: hub, RDB: rdb}
}

type countRow struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// GetStats powers the admin dashboard cards and charts.
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	var totalUsers, totalProviders, verifiedProviders int64
	h.DB.Model(&models.User{}).Count(&totalUsers)
	h.DB.Model(&models.User{}).Where("is_provider = ?", true).Count(&totalProviders)
	h.DB.Model(&models.User{}).Where("is_provider = ? AND verified = ?", true, true).Count(&verifiedProviders)

	var totalServices, totalReviews int64
	h.DB.Model(&models.Service{}).Count(&totalServices)
	h.DB.Model(&models.Review{}).Count(&totalReviews)

	// overall mean across all reviews, not the cached per-service values
	var averageRating float64
	h.DB.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&averageRating)

	var byCategory []countRow
	if err := h.DB.
		Table("services").
		Select("category as name, COUNT(*) as count").
		Group("category").
		Order("count DESC").
		Scan(&byCategory).Error; err != nil {
		log.Println("Error aggregating categories:", err)
	}

	var byLocation []countRow
	if err := h.DB.
		Table("services").
		Select("location as name, COUNT(*) as count").
		Group("location").
		Order("count DESC").
		Scan(&byLocation).Error; err != nil {
		log.Println("Error aggregating locations:", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_users":        totalUsers,
			"total_providers":    totalProviders,
			"verified_providers": verifiedProviders,
			"total_services":     totalServices,
			"total_reviews":      totalReviews,
			"average_rating":     averageRating,
			"by_category":        byCategory,
			"by_location":        byLocation,
		},
	})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	var users []models.User
	var total int64

	q := h.DB.Model(&models.User{})
	q.Count(&total)

	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error; err != nil {

		return fail500(c, "Failed to fetch users")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"total":   total,
		"data":    users,
	})
}

type VerifyReq struct {
	Verified bool `json:"verified"`
}

// SetProviderVerification toggles the verified badge. Verifying (not
// unverifying) also drops a notification for the provider and pushes it
// over redis.
func (h *AdminHandler) SetProviderVerification(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	var req VerifyReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", providerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	wasVerified := user.Verified
	user.Verified = req.Verified
	if err := h.DB.Save(&user).Error; err != nil {
		return fail500(c, "Failed to update verification")
	}

	if req.Verified && !wasVerified {
		notif := models.Notification{
			UserID: user.ID,
			Title:  "Account Verified!",
			Body:   "Congratulations! Your service provider account has been verified by our admin team. You now have a verified badge on your profile.",
		}
		if err := h.DB.Create(&notif).Error; err != nil {
			log.Println("Error creating verification notification:", err)
		} else {
			h.Hub.SendToUser(user.ID, fiber.Map{
				"type":         "notification",
				"notification": notif,
			})
			payload, _ := json.Marshal(fiber.Map{
				"type":  "verification",
				"title": notif.Title,
				"body":  notif.Body,
			})
			h.RDB.Publish(context.Background(), "notifications:"+user.ID.String(), payload)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Verification updated",
		"data": fiber.Map{
			"id":       user.ID,
			"verified": user.Verified,
		},
	})
}
