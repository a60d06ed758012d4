package service

import (
	"errors"
	"time"

	"walletbook/database"
	"walletbook/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetService 预算服务
type BudgetService struct{}

// NewBudgetService 创建预算服务
func NewBudgetService() *BudgetService {
	return &BudgetService{}
}

// BudgetUpdates 预算可更新字段，nil 表示不修改
type BudgetUpdates struct {
	Amount     *float64
	CategoryID *uint
	StartDate  *time.Time
	EndDate    *time.Time
}

// Create 创建预算，起止日期可选
func (s *BudgetService) Create(ownerID uint, amount float64, categoryID uint, startDate, endDate *time.Time) (*models.Budget, error) {
	if amount <= 0 {
		return nil, ErrValidation("金额必须大于 0")
	}
	if err := ensureOwnedCategory(categoryID, ownerID); err != nil {
		return nil, err
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, ErrValidation("结束日期不能早于开始日期")
	}

	budget := models.Budget{
		UserID:     ownerID,
		CategoryID: categoryID,
		Amount:     amount,
		StartDate:  startDate,
		EndDate:    endDate,
	}
	if err := database.DB.Create(&budget).Error; err != nil {
		return nil, ErrInternal("创建预算失败", err)
	}

	return s.reload(budget.ID)
}

// List 列出当前用户的全部预算，类别已展开
func (s *BudgetService) List(ownerID uint) ([]models.Budget, error) {
	var list []models.Budget
	if err := database.DB.Preload("Category").
		Where("user_id = ?", ownerID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, ErrInternal("查询预算失败", err)
	}
	return list, nil
}

// Get 获取单条预算
func (s *BudgetService) Get(id, ownerID uint) (*models.Budget, error) {
	return s.fetchOwned(id, ownerID)
}

// Update 更新预算
func (s *BudgetService) Update(id, ownerID uint, upd BudgetUpdates) (*models.Budget, error) {
	budget, err := s.fetchOwned(id, ownerID)
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
	if upd.CategoryID != nil {
		if err := ensureOwnedCategory(*upd.CategoryID, ownerID); err != nil {
			return nil, err
		}
		updates["category_id"] = *upd.CategoryID
	}
	// 起止关系按更新后的生效值校验，单独移动一端也不能让 end 早于 start
	start, end := budget.StartDate, budget.EndDate
	if upd.StartDate != nil {
		start = upd.StartDate
		updates["start_date"] = *upd.StartDate
	}
	if upd.EndDate != nil {
		end = upd.EndDate
		updates["end_date"] = *upd.EndDate
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, ErrValidation("结束日期不能早于开始日期")
	}

	if len(updates) > 0 {
		// 预加载的 Category 不参与保存，避免关联自动写回 categories 表
		if err := database.DB.Model(budget).Omit(clause.Associations).Updates(updates).Error; err != nil {
			return nil, ErrInternal("更新预算失败", err)
		}
	}

	return s.reload(budget.ID)
}

// Delete 删除预算
func (s *BudgetService) Delete(id, ownerID uint) error {
	budget, err := s.fetchOwned(id, ownerID)
	if err != nil {
		return err
	}
	if err := database.DB.Delete(budget).Error; err != nil {
		return ErrInternal("删除预算失败", err)
	}
	return nil
}

func (s *BudgetService) fetchOwned(id, ownerID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := database.DB.Preload("Category").First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("预算不存在")
		}
		return nil, ErrInternal("查询预算失败", err)
	}
	if budget.UserID != ownerID {
		return nil, ErrNotOwner("无权操作该预算")
	}
	return &budget, nil
}

// reload 重查并展开类别，查询目标用新结构体
func (s *BudgetService) reload(id uint) (*models.Budget, error) {
	var budget models.Budget
	if err := database.DB.Preload("Category").First(&budget, id).Error; err != nil {
		return nil, ErrInternal("查询预算失败", err)
	}
	return &budget, nil
}
