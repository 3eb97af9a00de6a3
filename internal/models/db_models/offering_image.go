package db_models

import "github.com/google/uuid"

type OfferingImage struct {
	BaseModel
	OfferingID uuid.UUID `gorm:"index;not null"`
	URL        string    `gorm:"not null"`
	Source     string    // "upload", "gmb", "stock"
	License    string
	IsApproved bool `gorm:"default:false;index"`
	// At most one primary image per offering; enforced by the repository,
	// every promotion/demotion runs inside one transaction.
	IsPrimary bool `gorm:"default:false"`
	Width     *int
	Height    *int

	Offering Offering `gorm:"foreignKey:OfferingID"`
}
