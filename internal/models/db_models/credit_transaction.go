package db_models

import "github.com/google/uuid"

// CreditTransaction is the append-only ledger behind Account.Credits.
type CreditTransaction struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index;not null"`
	Delta     int       `gorm:"not null"`
	Reason    string
	ReviewID  *uuid.UUID

	Account Account `gorm:"foreignKey:AccountID"`
}
