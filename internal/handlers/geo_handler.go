package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aryanpatel3011/localseva_be/internal/services/geocode"
)

// GeoHandler proxies LocationIQ so the API key stays server-side.
type GeoHandler struct {
	Geo *geocode.Client
}

func NewGeoHandler(geo *geocode.Client) *GeoHandler {
	return &GeoHandler{Geo: geo}
}

func (h *GeoHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "q is required",
		})
	}

	res, err := h.Geo.Search(q)
	if err != nil {
		log.Println("Geocoding error:", err)
		return fail500(c, "Geocoding failed")
	}
	if res == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "No match",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    res,
	})
}

func (h *GeoHandler) Autocomplete(c *fiber.Ctx) error {
	q := c.Query("q")
	if len(q) < 3 {
		// too short to be useful, mirror the FE behavior
		return c.JSON(fiber.Map{
			"success": true,
			"data":    []geocode.Result{},
		})
	}

	res, err := h.Geo.Autocomplete(q, c.QueryInt("limit", 5))
	if err != nil {
		log.Println("Autocomplete error:", err)
		return fail500(c, "Autocomplete failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    res,
	})
}

func (h *GeoHandler) Reverse(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "lat and lon are required",
		})
	}

	name, err := h.Geo.Reverse(lat, lon)
	if err != nil {
		log.Println("Reverse geocoding error:", err)
		return fail500(c, "Reverse geocoding failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"display_name": name},
	})
}
