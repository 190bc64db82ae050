// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Chapter":
		return db.AutoMigrate(Chapter{})

	case "Item":
		return db.AutoMigrate(Item{})

	case "Media":
		return db.AutoMigrate(Media{})
	}
	return nil
}
