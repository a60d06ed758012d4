package api

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"walletbook/config"
	"walletbook/middleware"
	"walletbook/service"

	"github.com/gin-gonic/gin"
)

const maxAvatarSize = 5 << 20 // 头像上限 5MB

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg          *config.Config
	users        *service.UserService
	emailService *service.EmailService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		users:        service.NewUserService(),
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"pw123456"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string `json:"token"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户，multipart 表单提交，头像可选（JPEG/JPG/PNG，最大 5MB）
// @Tags 认证
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "用户名"
// @Param email formData string true "邮箱"
// @Param password formData string true "密码"
// @Param avatar formData file false "头像文件"
// @Success 201 {object} MessageResponse "注册成功"
// @Failure 400 {object} MessageResponse "参数错误或用户名/邮箱已被注册"
// @Router /api/users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if username == "" || email == "" || password == "" {
		BadRequest(c, "用户名、邮箱和密码不能为空")
		return
	}
	if len(password) < 6 {
		BadRequest(c, "密码长度不能少于 6 位")
		return
	}

	// 头像可选
	var avatarPath string
	if file, err := c.FormFile("avatar"); err == nil {
		avatarPath, err = h.saveAvatar(c, file)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
	}

	user, err := h.users.Register(username, email, password, avatarPath)
	if err != nil {
		// 注册失败时清理已保存的头像文件
		if avatarPath != "" {
			_ = os.Remove(avatarPath)
		}
		ServiceError(c, err)
		return
	}

	// 欢迎邮件为可选功能，发送失败不影响注册结果
	if h.cfg.Email.Enabled {
		if err := h.emailService.SendWelcomeEmail(user.Email, user.Username); err != nil {
			log.Printf("发送欢迎邮件失败: %v", err)
		}
	}

	Message(c, 201, "注册成功")
}

// saveAvatar 校验并保存头像文件，返回保存后的相对路径
func (h *AuthHandler) saveAvatar(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxAvatarSize {
		return "", fmt.Errorf("头像文件不能超过 5MB")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpeg" && ext != ".jpg" && ext != ".png" {
		return "", fmt.Errorf("头像仅支持 JPEG/JPG/PNG 格式")
	}

	uploadDir := h.cfg.Server.UploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("创建上传目录失败")
	}

	// 以时间戳命名避免冲突，不保留用户提供的文件名
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	dst := filepath.Join(uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("保存头像失败")
	}
	return dst, nil
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验用户名密码，返回 1 小时有效期的 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} LoginResponse "登录成功"
// @Failure 400 {object} MessageResponse "用户名或密码错误"
// @Router /api/users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		ServiceError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	OK(c, LoginResponse{Token: token})
}

// Me 获取当前用户信息
// @Summary 获取当前用户信息
// @Description 返回当前登录用户的信息，不包含密码字段
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "获取成功"
// @Failure 401 {object} MessageResponse "未授权"
// @Failure 404 {object} MessageResponse "用户不存在"
// @Router /api/users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	user, err := h.users.GetByID(userID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, user)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50"`
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Description 校验原密码后更新为新密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "密码信息"
// @Success 200 {object} MessageResponse "修改成功"
// @Failure 400 {object} MessageResponse "参数错误或原密码错误"
// @Router /api/users/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.users.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		ServiceError(c, err)
		return
	}

	Message(c, 200, "密码修改成功")
}
