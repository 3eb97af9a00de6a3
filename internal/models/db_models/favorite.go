package db_models

import "github.com/google/uuid"

type Favorite struct {
	BaseModel
	AccountID  uuid.UUID `gorm:"not null;index:idx_favorite_account_business,unique"`
	BusinessID uuid.UUID `gorm:"not null;index:idx_favorite_account_business,unique"`

	Business Business `gorm:"foreignKey:BusinessID"`
}
