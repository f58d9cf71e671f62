package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/hdfilm/internal/middleware"
	"github.com/user/hdfilm/internal/utils"
	"github.com/user/hdfilm/internal/view"
)

// ListUsers 用户列表，只暴露邮箱和用户名
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Repos.User.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	items := make([]view.UserItem, 0, len(users))
	for _, u := range users {
		items = append(items, view.NewUserItem(u))
	}
	utils.Success(c, items)
}

// GetUser 用户详情，仅本人可见
// 嵌套当前生效的收藏、点赞和观看历史
func (h *Handler) GetUser(c *gin.Context) {
	email := c.Param("email")
	if email != middleware.GetUserEmail(c) {
		utils.Forbidden(c, "")
		return
	}

	user, err := h.Repos.User.FindByEmail(email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	favorites, err := h.Repos.Favorite.ListFavoritedByUser(user.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	likes, err := h.Repos.Like.ListLikedByUser(user.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	histories, err := h.Repos.History.ListByUser(user.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, view.NewUserDetail(user, favorites, likes, histories))
}

// UpdateUserReq 更新用户请求
type UpdateUserReq struct {
	Username string `json:"username" binding:"omitempty,min=2,max=50"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// UpdateUser 更新用户名或密码，仅限本人
func (h *Handler) UpdateUser(c *gin.Context) {
	email := c.Param("email")
	if email != middleware.GetUserEmail(c) {
		utils.Forbidden(c, "")
		return
	}

	var req UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "无效的请求数据")
		return
	}

	userID := middleware.GetUserID(c)

	if req.Username != "" {
		if err := h.Repos.User.UpdateUsername(userID, req.Username); err != nil {
			utils.InternalServerError(c, "用户名更新失败")
			return
		}
	}
	if req.Password != "" {
		if err := h.Repos.User.UpdatePassword(userID, req.Password); err != nil {
			utils.InternalServerError(c, "密码更新失败")
			return
		}
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil || user == nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, view.NewUserItem(user))
}

// DeleteUser 注销账号，仅限本人，关联数据一并删除
func (h *Handler) DeleteUser(c *gin.Context) {
	email := c.Param("email")
	if email != middleware.GetUserEmail(c) {
		utils.Forbidden(c, "")
		return
	}

	if err := h.Repos.User.Delete(middleware.GetUserID(c)); err != nil {
		utils.InternalServerError(c, "删除失败")
		return
	}

	utils.SuccessWithMessage(c, "账号已删除", nil)
}

// ListHistory 当前用户的观看历史，最近观看在前
func (h *Handler) ListHistory(c *gin.Context) {
	histories, err := h.Repos.History.ListByUser(middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	items := make([]view.HistoryItem, 0, len(histories))
	for _, record := range histories {
		items = append(items, view.NewHistoryItem(record))
	}
	utils.Success(c, items)
}
