package repository

import (
	"context"

	"gorm.io/gorm"
)

// exists reports whether a row of model with the given primary key is present.
func exists(ctx context.Context, db *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
