package service

import (
	"errors"
	"time"

	"walletbook/database"
	"walletbook/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExpenseService 消费记录服务
type ExpenseService struct{}

// NewExpenseService 创建消费记录服务
func NewExpenseService() *ExpenseService {
	return &ExpenseService{}
}

// ExpenseUpdates 消费记录可更新字段，nil 表示不修改
type ExpenseUpdates struct {
	Amount     *float64
	CategoryID *uint
	Date       *time.Time
}

// Create 创建消费记录，归属用户在创建时写入且之后不可变更
func (s *ExpenseService) Create(ownerID uint, amount float64, categoryID uint, date time.Time) (*models.Expense, error) {
	if amount <= 0 {
		return nil, ErrValidation("金额必须大于 0")
	}
	if err := ensureOwnedCategory(categoryID, ownerID); err != nil {
		return nil, err
	}

	expense := models.Expense{
		UserID:     ownerID,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
	}
	if err := database.DB.Create(&expense).Error; err != nil {
		return nil, ErrInternal("创建消费记录失败", err)
	}

	// 返回时带上类别信息
	return s.reload(expense.ID)
}

// List 列出当前用户的全部消费记录，按日期倒序，类别已展开
func (s *ExpenseService) List(ownerID uint) ([]models.Expense, error) {
	var list []models.Expense
	if err := database.DB.Preload("Category").
		Where("user_id = ?", ownerID).
		Order("date DESC").
		Find(&list).Error; err != nil {
		return nil, ErrInternal("查询消费记录失败", err)
	}
	return list, nil
}

// Get 获取单条消费记录
func (s *ExpenseService) Get(id, ownerID uint) (*models.Expense, error) {
	return s.fetchOwned(id, ownerID)
}

// Update 更新消费记录，先做归属校验再覆盖可变字段
func (s *ExpenseService) Update(id, ownerID uint, upd ExpenseUpdates) (*models.Expense, error) {
	expense, err := s.fetchOwned(id, ownerID)
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
	if upd.Date != nil {
		updates["date"] = *upd.Date
	}

	if len(updates) > 0 {
		// expense 带着预加载的 Category，不加 Omit 会触发关联自动保存，
		// 往 categories 表写入额外语句
		if err := database.DB.Model(expense).Omit(clause.Associations).Updates(updates).Error; err != nil {
			return nil, ErrInternal("更新消费记录失败", err)
		}
	}

	return s.reload(expense.ID)
}

// Delete 删除消费记录
func (s *ExpenseService) Delete(id, ownerID uint) error {
	expense, err := s.fetchOwned(id, ownerID)
	if err != nil {
		return err
	}
	if err := database.DB.Delete(expense).Error; err != nil {
		return ErrInternal("删除消费记录失败", err)
	}
	return nil
}

// fetchOwned 按 ID 查找并校验归属：
// 不存在返回 NotFound，归属他人返回 NotOwner，两种情况对客户端保持可区分
func (s *ExpenseService) fetchOwned(id, ownerID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := database.DB.Preload("Category").First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("消费记录不存在")
		}
		return nil, ErrInternal("查询消费记录失败", err)
	}
	if expense.UserID != ownerID {
		return nil, ErrNotOwner("无权操作该消费记录")
	}
	return &expense, nil
}

// reload 重查并展开类别
// 查询目标用新结构体，已有主键的结构体会被 First 拼成重复的 id 条件
func (s *ExpenseService) reload(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := database.DB.Preload("Category").First(&expense, id).Error; err != nil {
		return nil, ErrInternal("查询消费记录失败", err)
	}
	return &expense, nil
}
