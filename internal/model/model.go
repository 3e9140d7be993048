// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名执行迁移
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Note":
		return db.AutoMigrate(Note{})

	case "User":
		return db.AutoMigrate(User{})

	case "Setting":
		return db.AutoMigrate(Setting{})
	}
	return nil
}

// AutoMigrateAll 迁移全部模型
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"Note", "User", "Setting"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
