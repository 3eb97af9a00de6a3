package db_models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type OfferingEmbedding struct {
	OfferingID string `gorm:"primaryKey;column:offering_id"`
	Content    string `gorm:"type:text"`
	Model      string
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}
