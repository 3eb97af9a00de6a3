package db_models

// Category represents a business category as a separate table
// with a UUID primary key and a Name field.
type Category struct {
	BaseModel
	Name       string     `gorm:"unique;not null"`
	Businesses []Business `gorm:"foreignKey:CategoryID"`
}
