package db_models

type Tag struct {
	BaseModel
	Name       string     `gorm:"unique;not null"`
	Businesses []Business `gorm:"many2many:business_tags"`
}
