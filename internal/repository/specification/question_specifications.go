package specification

import "gorm.io/gorm"

// ActiveOnly keeps questions currently in rotation
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
