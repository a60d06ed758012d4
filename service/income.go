package service

import (
	"errors"
	"strings"
	"time"

	"walletbook/database"
	"walletbook/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IncomeService 收入记录服务
type IncomeService struct{}

// NewIncomeService 创建收入记录服务
func NewIncomeService() *IncomeService {
	return &IncomeService{}
}

// IncomeUpdates 收入记录可更新字段，nil 表示不修改
type IncomeUpdates struct {
	Amount     *float64
	Source     *string
	CategoryID *uint
	Date       *time.Time
}

// Create 创建收入记录
func (s *IncomeService) Create(ownerID uint, amount float64, source string, categoryID uint, date time.Time) (*models.Income, error) {
	if amount <= 0 {
		return nil, ErrValidation("金额必须大于 0")
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrValidation("收入来源不能为空")
	}
	if err := ensureOwnedCategory(categoryID, ownerID); err != nil {
		return nil, err
	}

	income := models.Income{
		UserID:     ownerID,
		CategoryID: categoryID,
		Amount:     amount,
		Source:     source,
		Date:       date,
	}
	if err := database.DB.Create(&income).Error; err != nil {
		return nil, ErrInternal("创建收入记录失败", err)
	}

	return s.reload(income.ID)
}

// List 列出当前用户的全部收入记录，按日期倒序，类别已展开
func (s *IncomeService) List(ownerID uint) ([]models.Income, error) {
	var list []models.Income
	if err := database.DB.Preload("Category").
		Where("user_id = ?", ownerID).
		Order("date DESC").
		Find(&list).Error; err != nil {
		return nil, ErrInternal("查询收入记录失败", err)
	}
	return list, nil
}

// Get 获取单条收入记录
func (s *IncomeService) Get(id, ownerID uint) (*models.Income, error) {
	return s.fetchOwned(id, ownerID)
}

// Update 更新收入记录
func (s *IncomeService) Update(id, ownerID uint, upd IncomeUpdates) (*models.Income, error) {
	income, err := s.fetchOwned(id, ownerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if upd.Amount != nil {
		if *upd.Amount <= 0 {
			return nil, ErrValidation("金额必须大于 0")
		}
		updates["amount"] = *upd.Amount
	}
	if upd.Source != nil {
		src := strings.TrimSpace(*upd.Source)
		if src == "" {
			return nil, ErrValidation("收入来源不能为空")
		}
		updates["source"] = src
	}
	if upd.CategoryID != nil {
		if err := ensureOwnedCategory(*upd.CategoryID, ownerID); err != nil {
			return nil, err
		}
		updates["category_id"] = *upd.CategoryID
	}
	if upd.Date != nil {
		updates["date"] = *upd.Date
	}

	if len(updates) > 0 {
		// 预加载的 Category 不参与保存，避免关联自动写回 categories 表
		if err := database.DB.Model(income).Omit(clause.Associations).Updates(updates).Error; err != nil {
			return nil, ErrInternal("更新收入记录失败", err)
		}
	}

	return s.reload(income.ID)
}

// Delete 删除收入记录
func (s *IncomeService) Delete(id, ownerID uint) error {
	income, err := s.fetchOwned(id, ownerID)
	if err != nil {
		return err
	}
	if err := database.DB.Delete(income).Error; err != nil {
		return ErrInternal("删除收入记录失败", err)
	}
	return nil
}

func (s *IncomeService) fetchOwned(id, ownerID uint) (*models.Income, error) {
	var income models.Income
	if err := database.DB.Preload("Category").First(&income, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("收入记录不存在")
		}
		return nil, ErrInternal("查询收入记录失败", err)
	}
	if income.UserID != ownerID {
		return nil, ErrNotOwner("无权操作该收入记录")
	}
	return &income, nil
}

// reload 重查并展开类别，查询目标用新结构体
func (s *IncomeService) reload(id uint) (*models.Income, error) {
	var income models.Income
	if err := database.DB.Preload("Category").First(&income, id).Error; err != nil {
		return nil, ErrInternal("查询收入记录失败", err)
	}
	return &income, nil
}
