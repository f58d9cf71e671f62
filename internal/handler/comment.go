package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/hdfilm/internal/middleware"
	"github.com/user/hdfilm/internal/model"
	"github.com/user/hdfilm/internal/utils"
	"github.com/user/hdfilm/internal/view"
)

// ListComments 全部评论列表
// 平铺返回每条评论，各自带自己的子树
func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.Repos.Comment.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, view.NewCommentList(comments))
}

// GetComment 评论详情，子评论递归嵌套
func (h *Handler) GetComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评论 ID")
		return
	}

	comment, err := h.Repos.Comment.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if comment == nil {
		utils.NotFound(c, "评论不存在")
		return
	}

	all, err := h.Repos.Comment.ListByMovie(comment.MovieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, view.NewCommentNode(comment, all))
}

// CommentReq 评论创建请求
type CommentReq struct {
	Movie  int    `json:"movie" binding:"required"`
	Parent *int   `json:"parent"`
	Text   string `json:"text" binding:"required,notblank"`
}

// CreateComment 发表评论（需登录）
// parent 指定时必须指向同一电影下的已有评论
func (h *Handler) CreateComment(c *gin.Context) {
	var req CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "无效的请求数据")
		return
	}

	movie, err := h.Repos.Movie.FindByID(req.Movie)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.BadRequest(c, "电影不存在")
		return
	}

	if req.Parent != nil {
		parent, err := h.Repos.Comment.FindByID(*req.Parent)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		if parent == nil || parent.MovieID != req.Movie {
			utils.BadRequest(c, "父评论不存在")
			return
		}
	}

	comment := &model.Comment{
		UserID:   middleware.GetUserID(c),
		MovieID:  req.Movie,
		ParentID: req.Parent,
		Text:     req.Text,
	}
	if err := h.Repos.Comment.Create(comment); err != nil {
		utils.InternalServerError(c, "发表评论失败")
		return
	}

	utils.Created(c, "发表成功", view.NewCommentNode(comment, nil))
}

// UpdateCommentReq 评论更新请求
type UpdateCommentReq struct {
	Text string `json:"text" binding:"required,notblank"`
}

// UpdateComment 修改评论内容，仅限作者
func (h *Handler) UpdateComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评论 ID")
		return
	}

	comment, err := h.Repos.Comment.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if comment == nil {
		utils.NotFound(c, "评论不存在")
		return
	}
	if comment.UserID != middleware.GetUserID(c) {
		utils.Forbidden(c, "只能修改自己的评论")
		return
	}

	var req UpdateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "无效的请求数据")
		return
	}

	if err := h.Repos.Comment.UpdateText(id, req.Text); err != nil {
		utils.InternalServerError(c, "修改评论失败")
		return
	}

	updated, err := h.Repos.Comment.FindByID(id)
	if err != nil || updated == nil {
		utils.InternalServerError(c, "")
		return
	}
	all, err := h.Repos.Comment.ListByMovie(updated.MovieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, view.NewCommentNode(updated, all))
}

// DeleteComment 删除评论及其子评论，仅限作者
func (h *Handler) DeleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评论 ID")
		return
	}

	comment, err := h.Repos.Comment.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if comment == nil {
		utils.NotFound(c, "评论不存在")
		return
	}
	if comment.UserID != middleware.GetUserID(c) {
		utils.Forbidden(c, "只能删除自己的评论")
		return
	}

	if err := h.Repos.Comment.Delete(id); err != nil {
		utils.InternalServerError(c, "删除评论失败")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
