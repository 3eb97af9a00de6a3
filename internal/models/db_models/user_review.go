package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

type UserReview struct {
	BaseModel
	AccountID  uuid.UUID  `gorm:"index;not null"`
	BusinessID uuid.UUID  `gorm:"index;not null"`
	OfferingID *uuid.UUID `gorm:"index"`

	Rating     int            `gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	ReviewText string         `gorm:"type:text"`
	ImageURLs  pq.StringArray `gorm:"type:text[]"`

	// pending -> approved or pending -> rejected, nothing else.
	Status         ReviewStatus `gorm:"type:varchar(16);default:'pending';index"`
	Views          int          `gorm:"default:0"`
	ModeratedAt    *int64
	ModeratedBy    *uuid.UUID
	ModerationNote string

	Account  Account  `gorm:"foreignKey:AccountID"`
	Business Business `gorm:"foreignKey:BusinessID"`
}
