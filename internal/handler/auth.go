package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/hdfilm/internal/middleware"
	"github.com/user/hdfilm/internal/utils"
	"github.com/user/hdfilm/internal/view"
)

// RegisterReq 注册请求
type RegisterReq struct {
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required,min=2,max=50"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// Register 注册
// 新账号默认未激活，激活码通过邮件异步发送
func (h *Handler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "无效的请求数据")
		return
	}

	if req.Password != req.PasswordConfirm {
		utils.BadRequest(c, "两次输入的密码不一致")
		return
	}

	// 检查邮箱是否已存在
	existing, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing != nil {
		utils.BadRequest(c, "该邮箱已被注册")
		return
	}

	user, err := h.Repos.User.Create(req.Email, req.Username, req.Password)
	if err != nil {
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}

	// 异步发送激活邮件，失败不回滚注册
	h.Mailer.SendActivationCodeAsync(user.Email, user.ActivationCode)

	utils.Created(c, "注册成功，请查收激活邮件", view.NewUserItem(user))
}

// Activate 激活账号
// 激活码只能兑换一次，兑换后清空，再次请求按未找到处理
func (h *Handler) Activate(c *gin.Context) {
	code := c.Param("code")

	user, err := h.Repos.User.FindByActivationCode(code)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "无效的激活码")
		return
	}

	if err := h.Repos.User.Activate(user.ID); err != nil {
		utils.InternalServerError(c, "激活失败，请重试")
		return
	}

	utils.SuccessWithMessage(c, "账号激活成功", nil)
}

// LoginReq 登录请求
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 登录，颁发 JWT 并写入 Cookie
func (h *Handler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请输入邮箱和密码")
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	// 未激活的账号不能登录，提示与密码错误保持一致，避免泄露账号状态
	if user == nil || !user.IsActive || !h.Repos.User.CheckPassword(user, req.Password) {
		utils.BadRequest(c, "邮箱或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.InternalServerError(c, "登录失败，请重试")
		return
	}

	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)

	utils.Success(c, gin.H{
		"token": token,
		"user":  view.NewUserItem(user),
	})
}

// Logout 登出，清除 Token Cookie
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	utils.SuccessWithMessage(c, "已退出登录", nil)
}
