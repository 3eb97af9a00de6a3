package db_models

import "github.com/google/uuid"

type Offering struct {
	BaseModel
	BusinessID  uuid.UUID `gorm:"index;not null"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	PriceCents  *int64
	Currency    string `gorm:"size:3;default:'USD'"`
	IsActive    bool   `gorm:"default:true;index"`

	Business Business `gorm:"foreignKey:BusinessID"`
	Images   []OfferingImage
}
