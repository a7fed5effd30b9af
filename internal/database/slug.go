package database

import (
	"fmt"

	"gorm.io/gorm"
)

// SlugTaken reports whether another row of model already uses slug.
func SlugTaken(db *gorm.DB, model any, slug string, excludeID uint) (bool, error) {
	var count int64
	q := db.Model(model).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UniqueSlug returns base, or base-2, base-3... whichever is free first.
func UniqueSlug(db *gorm.DB, model any, base string, excludeID uint) (string, error) {
	if base == "" {
		base = "item"
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := SlugTaken(db, model, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
