package db_models

type City struct {
	BaseModel
	Name   string `gorm:"index:idx_city_name_region,unique;not null"`
	Region string `gorm:"index:idx_city_name_region,unique"`

	Businesses []Business `gorm:"foreignKey:CityID"`
}
