package db_models

// RateLimit is one log row per counted request. The limiter counts rows
// per identifier+function inside a sliding window; old rows are pruned by
// the nightly refresh.
type RateLimit struct {
	ID         uint   `gorm:"primaryKey"`
	Identifier string `gorm:"index:idx_rate_limit_window;not null"`
	Function   string `gorm:"index:idx_rate_limit_window;not null"`
	CreatedAt  int64  `gorm:"index:idx_rate_limit_window;autoCreateTime"`
}
