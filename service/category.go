package service

import (
	"errors"
	"strings"

	"walletbook/database"
	"walletbook/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryService 类别服务
// 类别名称在同一用户下唯一，列表和唯一性检查均按归属用户过滤
type CategoryService struct{}

// NewCategoryService 创建类别服务
func NewCategoryService() *CategoryService {
	return &CategoryService{}
}

// Create 创建类别
func (s *CategoryService) Create(ownerID uint, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation("类别名称不能为空")
	}

	// 同一用户下名称唯一
	var existing models.Category
	err := database.DB.Where("user_id = ? AND name = ?", ownerID, name).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicate("类别名称已存在")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInternal("查询类别失败", err)
	}

	category := models.Category{
		UserID:      ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := database.DB.Create(&category).Error; err != nil {
		return nil, ErrInternal("创建类别失败", err)
	}
	return &category, nil
}

// List 列出当前用户的全部类别
func (s *CategoryService) List(ownerID uint) ([]models.Category, error) {
	var list []models.Category
	if err := database.DB.Where("user_id = ?", ownerID).Order("name ASC").Find(&list).Error; err != nil {
		return nil, ErrInternal("查询类别失败", err)
	}
	return list, nil
}

// Update 更新类别名称/描述
// 归属校验：先按 ID 查找，记录存在但归属他人时返回越权错误，而不是笼统的不存在
func (s *CategoryService) Update(id, ownerID uint, name string, description *string) (*models.Category, error) {
	category, err := s.fetchOwned(id, ownerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, ErrValidation("类别名称不能为空")
		}
		// 排除自身后检查重名
		var existing models.Category
		err := database.DB.Where("user_id = ? AND name = ? AND id <> ?", ownerID, name, id).First(&existing).Error
		if err == nil {
			return nil, ErrDuplicate("类别名称已存在")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternal("查询类别失败", err)
		}
		updates["name"] = name
	}
	if description != nil {
		updates["description"] = strings.TrimSpace(*description)
	}

	if len(updates) == 0 {
		return category, nil
	}
	if err := database.DB.Model(category).Omit(clause.Associations).Updates(updates).Error; err != nil {
		return nil, ErrInternal("更新类别失败", err)
	}
	return category, nil
}

// Delete 删除类别
// 删除策略为 restrict：仍被消费/收入/预算记录引用的类别不允许删除，避免悬空引用
func (s *CategoryService) Delete(id, ownerID uint) error {
	category, err := s.fetchOwned(id, ownerID)
	if err != nil {
		return err
	}

	// 引用计数失败时不能放行删除
	var refs int64
	if err := database.DB.Model(&models.Expense{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return ErrInternal("查询类别引用失败", err)
	}
	if refs > 0 {
		return ErrValidation("类别仍被消费记录引用，无法删除")
	}
	if err := database.DB.Model(&models.Income{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return ErrInternal("查询类别引用失败", err)
	}
	if refs > 0 {
		return ErrValidation("类别仍被收入记录引用，无法删除")
	}
	if err := database.DB.Model(&models.Budget{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return ErrInternal("查询类别引用失败", err)
	}
	if refs > 0 {
		return ErrValidation("类别仍被预算引用，无法删除")
	}

	if err := database.DB.Delete(category).Error; err != nil {
		return ErrInternal("删除类别失败", err)
	}
	return nil
}

// fetchOwned 按 ID 查找并校验归属
func (s *CategoryService) fetchOwned(id, ownerID uint) (*models.Category, error) {
	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("类别不存在")
		}
		return nil, ErrInternal("查询类别失败", err)
	}
	if category.UserID != ownerID {
		return nil, ErrNotOwner("无权操作该类别")
	}
	return &category, nil
}

// ensureOwnedCategory 消费/收入/预算创建和更新前的引用校验：
// 被引用的类别必须存在且归属当前用户
func ensureOwnedCategory(categoryID, ownerID uint) error {
	if categoryID == 0 {
		return ErrValidation("请指定类别")
	}
	var category models.Category
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrValidation("引用的类别不存在")
		}
		return ErrInternal("查询类别失败", err)
	}
	if category.UserID != ownerID {
		return ErrValidation("引用的类别不属于当前用户")
	}
	return nil
}
