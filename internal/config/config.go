package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort         string
	DBDSN           string
	JWTSecret       string
	JWTExpiresMin   int
	AdminEmail      string
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string

	LocationIQKey     string
	GeoCountryCode    string
	CloudinaryCloud   string
	CloudinaryProfile string
	CloudinaryResume  string
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	return Config{
		AppPort:         get("APP_PORT", "8080"),
		DBDSN:           must("DB_DSN"),
		JWTSecret:       must("JWT_SECRET"),
		JWTExpiresMin:   expires,
		AdminEmail:      get("ADMIN_EMAIL", "admin@gmail.com"),
		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),

		LocationIQKey:     get("LOCATIONIQ_KEY", ""),
		GeoCountryCode:    get("GEO_COUNTRY_CODE", "in"),
		CloudinaryCloud:   get("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryProfile: get("CLOUDINARY_PROFILE_PRESET", ""),
		CloudinaryResume:  get("CLOUDINARY_RESUME_PRESET", ""),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
