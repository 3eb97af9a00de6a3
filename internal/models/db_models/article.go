package db_models

// Article mirrors a WordPress post pulled by the content sync.
type Article struct {
	BaseModel
	WPID        int64  `gorm:"column:wp_id;uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Excerpt     string `gorm:"type:text"`
	URL         string
	PublishedAt int64
}
