package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	// empty for Google accounts
	Password string `json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role"`

	Name     string `gorm:"type:varchar(120)" json:"name"`
	Phone    string `gorm:"type:varchar(30)" json:"phone"`
	Username string `gorm:"type:varchar(60);index" json:"username"`

	IsProvider bool `gorm:"default:false" json:"is_provider"`
	Verified   bool `gorm:"default:false" json:"verified"`

	// provider info, string arrays kept as JSON
	Skills      datatypes.JSON `json:"skills"`
	Services    datatypes.JSON `json:"services"`
	Locations   datatypes.JSON `json:"locations"`
	SocialLinks datatypes.JSON `json:"social_links"`
	Experience  string         `gorm:"type:text" json:"experience"`
	Timings     string         `gorm:"type:varchar(120)" json:"timings"`

	ResumeURL           string `gorm:"type:text" json:"resume_url"`
	ProfilePicURL       string `gorm:"type:text" json:"profile_pic_url"`
	ProfilePicThumbnail string `gorm:"type:text" json:"profile_pic_thumbnail"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
