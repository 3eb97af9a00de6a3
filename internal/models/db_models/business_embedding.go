package db_models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type BusinessEmbedding struct {
	BusinessID string `gorm:"primaryKey;column:business_id"`
	Content    string `gorm:"type:text"`
	Model      string
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}
