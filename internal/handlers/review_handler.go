package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/aryanpatel3011/localseva_be/internal/catalog"
	"github.com/aryanpatel3011/localseva_be/internal/models"
	"github.com/aryanpatel3011/localseva_be/internal/reviews"
)

type ReviewHandler struct {
	DB       *gorm.DB
	Catalog  *catalog.Store
	Sanitize *bluemonday.Policy
}

func NewReviewHandler(db *gorm.DB, cat *catalog.Store) *ReviewHandler {
	return &ReviewHandler{DB: db, Catalog: cat, Sanitize: bluemonday.StrictPolicy()}
}

// ListForService returns a service's reviews, newest first.
func (h *ReviewHandler) ListForService(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid service ID",
		})
	}

	var rs []models.Review
	if err := h.DB.
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&rs).Error; err != nil {

		return fail500(c, "Failed to fetch reviews")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rs,
	})
}

func (h *ReviewHandler) MyReviews(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var rs []models.Review
	if err := h.DB.
		Preload("Service").
		Where("user_id = ?", userUUID).
		Order("created_at DESC").
		Find(&rs).Error; err != nil {

		return fail500(c, "Failed to fetch reviews")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rs,
	})
}

type ReviewReq struct {
	Rating   int    `json:"rating"`
	Body     string `json:"body"`
	UserName string `json:"user_name"`
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid service ID",
		})
	}

	var req ReviewReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Rating must be between 1 and 5",
		})
	}

	var svc models.Service
	if err := h.DB.First(&svc, "id = ?", serviceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Service not found",
		})
	}

	// one review per (user, service) - API-level rule, the table itself
	// has no unique index
	var existing models.Review
	if err := h.DB.
		Where("user_id = ? AND service_id = ?", userUUID, serviceID).
		First(&existing).Error; err == nil {

		return fail200(c, "You already reviewed this service", fiber.Map{
			"review_id": existing.ID,
		})
	} else if err != gorm.ErrRecordNotFound {
		return fail500(c, "Something went wrong")
	}

	userName := req.UserName
	if userName == "" {
		userName = "Anonymous"
	}

	review := models.Review{
		UserID:    userUUID,
		ServiceID: serviceID,
		Rating:    req.Rating,
		Body:      h.Sanitize.Sanitize(req.Body),
		UserName:  userName,
	}

	if err := h.DB.Create(&review).Error; err != nil {
		return fail500(c, "Failed to save review")
	}

	// best effort: the review write stands even if the recompute fails
	h.recomputeRating(serviceID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Review submitted",
		"data":    review,
	})
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var review models.Review
	if err := h.DB.First(&review, "id = ? AND user_id = ?", c.Params("id"), userUUID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Review not found",
		})
	}

	var req ReviewReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Rating must be between 1 and 5",
		})
	}

	review.Rating = req.Rating
	review.Body = h.Sanitize.Sanitize(req.Body)

	if err := h.DB.Save(&review).Error; err != nil {
		return fail500(c, "Failed to update review")
	}

	h.recomputeRating(review.ServiceID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review updated",
		"data":    review,
	})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var review models.Review
	if err := h.DB.
		Where("id = ? AND user_id = ?", c.Params("id"), userUUID).
		First(&review).Error; err != nil {

		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Review not found",
		})
	}

	if err := h.DB.Delete(&review).Error; err != nil {
		return fail500(c, "Failed to delete review")
	}

	h.recomputeRating(review.ServiceID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review deleted",
	})
}

// recomputeRating rewrites the cached aggregate on the service from the
// full review set. Failures are logged only; the triggering write is
// never rolled back and the cache heals on the next mutation.
func (h *ReviewHandler) recomputeRating(serviceID uuid.UUID) {
	var rs []models.Review
	if err := h.DB.Where("service_id = ?", serviceID).Find(&rs).Error; err != nil {
		log.Println("Error fetching reviews for rating recompute:", err)
		return
	}

	agg := reviews.ComputeAggregate(rs)

	if err := h.DB.Model(&models.Service{}).
		Where("id = ?", serviceID).
		Updates(map[string]interface{}{
			"rating":       agg.Average,
			"review_count": agg.Count,
		}).Error; err != nil {
		log.Println("Error updating service rating:", err)
		return
	}

	if err := h.Catalog.Reload(); err != nil {
		log.Println("Error reloading catalog:", err)
	}
}
