package models

import (
	"time"

	"gorm.io/gorm"
)

// Budget 预算模型
// 针对某个类别设置的预算额度，起止日期可选（为空表示长期预算）
type Budget struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	CategoryID uint           `json:"category_id" gorm:"index;not null"`
	Amount     float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	StartDate  *time.Time     `json:"start_date,omitempty"`
	EndDate    *time.Time     `json:"end_date,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	User       User           `json:"-" gorm:"foreignKey:UserID"`
	Category   *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// TableName 设置表名
func (Budget) TableName() string {
	return "budgets"
}
