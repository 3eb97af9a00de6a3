package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Business struct {
	BaseModel
	Name        string `gorm:"index;not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	CategoryID  *uuid.UUID
	CityID      *uuid.UUID
	Address     string
	Latitude    float64
	Longitude   float64
	Phone       string
	Website     string
	IsVerified  bool    `gorm:"default:false;index"`
	IsVisible   bool    `gorm:"default:true;index"`
	RatingAvg   float64 `gorm:"default:0"`
	RatingCount int     `gorm:"default:0"`

	// Set when the row was imported from Google My Business, e.g.
	// "accounts/123/locations/456". Raw payload kept for re-import diffing.
	GMBResource string         `gorm:"column:gmb_resource;index"`
	GMBRaw      datatypes.JSON `gorm:"column:gmb_raw;type:jsonb;default:'{}'"`

	Category  *Category
	City      *City
	Tags      []Tag `gorm:"many2many:business_tags"`
	Offerings []Offering
	Reviews   []UserReview
}
