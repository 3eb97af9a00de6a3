package db_models

import "gorm.io/datatypes"

// AppSetting holds feature flags and tunables read by the services,
// e.g. "vision_moderation_enabled".
type AppSetting struct {
	BaseModel
	Key         string         `gorm:"uniqueIndex;not null"`
	Value       datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Description string
}
