package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 类别模型
// 类别归属于创建者，名称在同一用户下唯一；消费、收入、预算记录按 ID 引用类别
type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"uniqueIndex:idx_categories_owner_name;not null"`
	Name        string         `json:"name" gorm:"uniqueIndex:idx_categories_owner_name;size:50;not null"`
	Description string         `json:"description,omitempty" gorm:"size:255"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}
