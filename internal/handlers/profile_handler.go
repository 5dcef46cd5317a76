package handlers

import (
	"encoding/json"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aryanpatel3011/localseva_be/internal/models"
	"github.com/aryanpatel3011/localseva_be/internal/services/cloudinary"
)

type ProfileHandler struct {
	DB            *gorm.DB
	Uploader      *cloudinary.Client
	ProfilePreset string
	ResumePreset  string
}

func NewProfileHandler(db *gorm.DB, uploader *cloudinary.Client, profilePreset, resumePreset string) *ProfileHandler {
	return &ProfileHandler{
		DB:            db,
		Uploader:      uploader,
		ProfilePreset: profilePreset,
		ResumePreset:  resumePreset,
	}
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	uid := c.Locals("userId")

	var user models.User
	if err := h.DB.First(&user, "id = ?", uid).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"is_provider": user.IsProvider,
			"verified":    user.Verified,
		},
	})
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	uid := c.Locals("userId")

	var user models.User
	if err := h.DB.First(&user, "id = ?", uid).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Profile not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

type ProfileUpdateReq struct {
	Name      *string  `json:"name"`
	Phone     *string  `json:"phone"`
	Username  *string  `json:"username"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	uid := c.Locals("userId")

	var user models.User
	if err := h.DB.First(&user, "id = ?", uid).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Profile not found",
		})
	}

	var req ProfileUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "Invalid body")
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username != "" && username != user.Username {
			var other models.User
			if err := h.DB.
				Where("username = ? AND id != ?", username, user.ID).
				First(&other).Error; err == nil {

				return fail200(c, "Username is already taken")
			} else if err != gorm.ErrRecordNotFound {
				return fail500(c, "Something went wrong")
			}
		}
		user.Username = username
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Latitude != nil {
		user.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		user.Longitude = req.Longitude
	}

	if err := h.DB.Save(&user).Error; err != nil {
		return fail500(c, "Failed to update profile")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated",
		"data":    user,
	})
}

type ProviderInfoReq struct {
	Skills      []string `json:"skills"`
	Services    []string `json:"services"`
	Locations   []string `json:"locations"`
	SocialLinks []string `json:"social_links"`
	Experience  *string  `json:"experience"`
	Timings     *string  `json:"timings"`
}

// UpdateProviderInfo flips the account into provider mode and stores the
// provider-facing fields shown on listings.
func (h *ProfileHandler) UpdateProviderInfo(c *fiber.Ctx) error {
	uid := c.Locals("userId")

	var user models.User
	if err := h.DB.First(&user, "id = ?", uid).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Profile not found",
		})
	}

	var req ProviderInfoReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "Invalid body")
	}

	if req.Skills != nil {
		b, _ := json.Marshal(req.Skills)
		user.Skills = datatypes.JSON(b)
	}
	if req.Services != nil {
		b, _ := json.Marshal(req.Services)
		user.Services = datatypes.JSON(b)
	}
	if req.Locations != nil {
		b, _ := json.Marshal(req.Locations)
		user.Locations = datatypes.JSON(b)
	}
	if req.SocialLinks != nil {
		b, _ := json.Marshal(req.SocialLinks)
		user.SocialLinks = datatypes.JSON(b)
	}
	if req.Experience != nil {
		user.Experience = *req.Experience
	}
	if req.Timings != nil {
		user.Timings = *req.Timings
	}

	user.IsProvider = true

	if err := h.DB.Save(&user).Error; err != nil {
		return fail500(c, "Failed to update provider info")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Provider info updated",
		"data":    user,
	})
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// UploadPhoto sends the file to Cloudinary and stores both the full URL
// and the derived face-crop thumbnail.
func (h *ProfileHandler) UploadPhoto(c *fiber.Ctx) error {
	uid := c.Locals("userId")

	var user models.User
	if err := h.DB.First(&user, "id = ?", uid).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return fail200(c, "Photo file missing")
	}
	if file.Size <= 0 {
		return fail200(c, "Invalid file size")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return fail200(c, "Unsupported image format")
	}

	src, err := file.Open()
	if err != nil {
		return fail500(c, "Failed to read file")
	}
	defer src.Close()

	res, err := h.Uploader.UploadProfilePicture(file.Filename, src, h.ProfilePreset)
	if err != nil {
		log.Println("Cloudinary upload error:", err)
		return fail500(c, "Failed to upload photo")
	}

	user.ProfilePicURL = res.URL
	user.ProfilePicThumbnail = res.Thumbnail
	if err := h.DB.Save(&user).Error; err != nil {
		return fail500(c, "Failed to save photo")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"url":       res.URL,
		"thumbnail": res.Thumbnail,
	})
}

func (h *ProfileHandler) UploadResume(c *fiber.Ctx) error {
	uid := c.Locals("userId")

	var user models.User
	if err := h.DB.First(&user, "id = ?", uid).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return fail200(c, "Resume file missing")
	}
	if file.Size <= 0 {
		return fail200(c, "Invalid file size")
	}

	src, err := file.Open()
	if err != nil {
		return fail500(c, "Failed to read file")
	}
	defer src.Close()

	res, err := h.Uploader.Upload(file.Filename, src, h.ResumePreset)
	if err != nil {
		log.Println("Cloudinary upload error:", err)
		return fail500(c, "Failed to upload resume")
	}

	user.ResumeURL = res.URL
	if err := h.DB.Save(&user).Error; err != nil {
		return fail500(c, "Failed to save resume")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"url":     res.URL,
	})
}

// DeleteAccount removes the user row only. Services, reviews and
// messages written by the account keep their references; whether those
// should cascade is an open product decision, so current behavior is
// preserved.
func (h *ProfileHandler) DeleteAccount(c *fiber.Ctx) error {
	uid := c.Locals("userId")

	var user models.User
	if err := h.DB.First(&user, "id = ?", uid).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	if err := h.DB.Delete(&user).Error; err != nil {
		return fail500(c, "Failed to delete account")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "ls_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account deleted",
	})
}
