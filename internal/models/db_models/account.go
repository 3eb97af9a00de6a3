package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"default:'user'"`
	Credits      int    `gorm:"default:0"`
	Level        int    `gorm:"default:1"`

	Favorites []Favorite
	Reviews   []UserReview
}
