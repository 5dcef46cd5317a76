package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aryanpatel3011/localseva_be/internal/catalog"
	"github.com/aryanpatel3011/localseva_be/internal/models"
)

type ServiceHandler struct {
	DB       *gorm.DB
	Catalog  *catalog.Store
	Sanitize *bluemonday.Policy
}

func NewServiceHandler(db *gorm.DB, cat *catalog.Store) *ServiceHandler {
	return &ServiceHandler{DB: db, Catalog: cat, Sanitize: bluemonday.StrictPolicy()}
}

// base category set; providers can still type their own
var baseCategories = []string{
	"Electrician", "Plumber", "Tutor", "Mechanic",
	"Cleaner", "Painter", "Carpenter", "Landscaper",
}

var categoryColors = map[string]string{
	"Electrician": "#ff6b6b",
	"Plumber":     "#4ecdc4",
	"Tutor":       "#45b7d1",
	"Mechanic":    "#f9ca24",
	"Cleaner":     "#6c5ce7",
	"Painter":     "#fd79a8",
	"Carpenter":   "#00b894",
	"Landscaper":  "#e17055",
}

// categoryPlaceholder builds the inline SVG placeholder used when a
// listing has no image of its own.
func categoryPlaceholder(category string) string {
	color, ok := categoryColors[category]
	if !ok {
		color = "#95a5a6"
	}
	svg := fmt.Sprintf(`<svg width="400" height="300" xmlns="http://www.w3.org/2000/svg"><rect width="400" height="300" fill="%s"/><text x="200" y="150" font-family="Arial" font-size="24" fill="white" text-anchor="middle">%s</text></svg>`, color, category)
	return "data:image/svg+xml;charset=utf-8," + url.QueryEscape(svg)
}

func (h *ServiceHandler) GetCategories(c *fiber.Ctx) error {
	// fixed set plus whatever custom categories are already in use
	var inUse []string
	if err := h.DB.
		Table("services").
		Distinct("category").
		Pluck("category", &inUse).
		Error; err != nil {
		return fail500(c, "Failed to fetch categories")
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(baseCategories)+len(inUse))
	for _, cat := range baseCategories {
		seen[cat] = true
		out = append(out, cat)
	}
	for _, cat := range inUse {
		if cat != "" && !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// ListPublic browses the in-memory catalog. Filter groups are OR within
// and AND across; the full snapshot comes back when nothing is set.
func (h *ServiceHandler) ListPublic(c *fiber.Ctx) error {
	f := catalog.FilterState{
		Query:        c.Query("q"),
		Categories:   queryAll(c, "category"),
		Locations:    queryAll(c, "location"),
		Availability: queryAll(c, "availability"),
	}

	listings := h.Catalog.Browse(f)

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(listings),
		"data":    listings,
	})
}

func queryAll(c *fiber.Ctx, key string) []string {
	raw := c.Context().QueryArgs().PeekMulti(key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if len(v) > 0 {
			out = append(out, string(v))
		}
	}
	return out
}

func (h *ServiceHandler) GetDetail(c *fiber.Ctx) error {
	id := c.Params("id")

	var svc models.Service
	if err := h.DB.
		Preload("Provider").
		First(&svc, "id = ?", id).Error; err != nil {

		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Service not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    svc,
	})
}

type ServiceReq struct {
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	CustomCategory string   `json:"custom_category"`
	Location       string   `json:"location"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Availability   string   `json:"availability"`
	Description    string   `json:"description"`
	Image          string   `json:"image"`
	Price          string   `json:"price"`
	Skills         []string `json:"skills"`
}

func (req *ServiceReq) resolveCategory() string {
	if req.Category == "Write Manually" && req.CustomCategory != "" {
		return req.CustomCategory
	}
	return req.Category
}

func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var req ServiceReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	category := req.resolveCategory()
	if req.Title == "" || category == "" || req.Location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Title, category and location are required",
		})
	}

	availability := models.Availability(req.Availability)
	switch availability {
	case models.AvailabilityAvailable, models.AvailabilityBusy, models.AvailabilityOffline:
	case "":
		availability = models.AvailabilityAvailable
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid availability",
		})
	}

	image := req.Image
	if image == "" {
		var owner models.User
		if err := h.DB.First(&owner, "id = ?", userUUID).Error; err == nil && owner.ProfilePicURL != "" {
			image = owner.ProfilePicURL
		} else {
			image = categoryPlaceholder(category)
		}
	}

	skillsJSON, _ := json.Marshal(req.Skills)

	svc := models.Service{
		ProviderID:   userUUID,
		Title:        req.Title,
		Category:     category,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Availability: availability,
		Description:  h.Sanitize.Sanitize(req.Description),
		Image:        image,
		Price:        req.Price,
		Skills:       datatypes.JSON(skillsJSON),
	}

	if err := h.DB.Create(&svc).Error; err != nil {
		return fail500(c, "Failed to save service")
	}

	h.reloadCatalog()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Service created",
		"data":    svc,
	})
}

func (h *ServiceHandler) ListMine(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var services []models.Service
	if err := h.DB.
		Where("provider_id = ?", userUUID).
		Order("created_at DESC").
		Find(&services).Error; err != nil {

		return fail500(c, "Failed to fetch services")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    services,
	})
}

func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var svc models.Service
	if err := h.DB.First(&svc, "id = ? AND provider_id = ?", c.Params("id"), userUUID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Service not found",
		})
	}

	var req ServiceReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	category := req.resolveCategory()
	if req.Title == "" || category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Title and category are required",
		})
	}

	if req.Availability != "" {
		availability := models.Availability(req.Availability)
		switch availability {
		case models.AvailabilityAvailable, models.AvailabilityBusy, models.AvailabilityOffline:
			svc.Availability = availability
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid availability",
			})
		}
	}

	skillsJSON, _ := json.Marshal(req.Skills)

	svc.Title = req.Title
	svc.Category = category
	svc.Location = req.Location
	svc.Latitude = req.Latitude
	svc.Longitude = req.Longitude
	svc.Description = h.Sanitize.Sanitize(req.Description)
	svc.Price = req.Price
	svc.Skills = datatypes.JSON(skillsJSON)
	if req.Image != "" {
		svc.Image = req.Image
	}

	if err := h.DB.Save(&svc).Error; err != nil {
		return fail500(c, "Failed to update service")
	}

	h.reloadCatalog()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service updated",
		"data":    svc,
	})
}

// Delete removes a listing. Reviews and messages referencing it are left
// in place.
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var svc models.Service
	if err := h.DB.
		Where("id = ? AND provider_id = ?", c.Params("id"), userUUID).
		First(&svc).Error; err != nil {

		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Service not found",
		})
	}

	if err := h.DB.Delete(&svc).Error; err != nil {
		return fail500(c, "Failed to delete service")
	}

	h.reloadCatalog()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service deleted",
	})
}

func (h *ServiceHandler) reloadCatalog() {
	if err := h.Catalog.Reload(); err != nil {
		log.Println("Error reloading catalog:", err)
	}
}
