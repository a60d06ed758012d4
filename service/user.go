package service

import (
	"errors"
	"strings"

	"walletbook/database"
	"walletbook/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 用户服务
// 负责注册、登录校验和密码管理，密码只保存 bcrypt 哈希，明文不落库不打日志
type UserService struct{}

// NewUserService 创建用户服务
func NewUserService() *UserService {
	return &UserService{}
}

// Register 注册新用户
// 用户名与邮箱全局唯一，avatar 为可选的头像文件相对路径
func (s *UserService) Register(username, email, password, avatar string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrValidation("用户名、邮箱和密码不能为空")
	}

	var existing models.User
	err := database.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicate("用户名已被注册")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInternal("查询用户失败", err)
	}

	err = database.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicate("邮箱已被注册")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInternal("查询用户失败", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrInternal("密码加密失败", err)
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Avatar:   avatar,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, ErrInternal("创建用户失败", err)
	}
	return &user, nil
}

// Authenticate 按用户名校验密码
// 用户不存在与密码错误返回同一文案，避免泄露账号是否存在
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation("用户名或密码错误")
		}
		return nil, ErrInternal("查询用户失败", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrValidation("用户名或密码错误")
	}
	return &user, nil
}

// GetByID 按 ID 获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("用户不存在")
		}
		return nil, ErrInternal("查询用户失败", err)
	}
	return &user, nil
}

// ChangePassword 校验旧密码后更新为新密码
func (s *UserService) ChangePassword(id uint, oldPassword, newPassword string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrValidation("原密码错误")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal("密码加密失败", err)
	}

	if err := database.DB.Model(user).Update("password", string(hashed)).Error; err != nil {
		return ErrInternal("更新密码失败", err)
	}
	return nil
}
