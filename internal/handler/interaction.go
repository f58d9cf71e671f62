package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/hdfilm/internal/middleware"
	"github.com/user/hdfilm/internal/utils"
	"github.com/user/hdfilm/internal/view"
)

// ToggleReq 点赞/收藏切换请求
type ToggleReq struct {
	Movie int `json:"movie" binding:"required"`
}

// ListLikes 全部点赞记录
func (h *Handler) ListLikes(c *gin.Context) {
	likes, err := h.Repos.Like.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	items := make([]view.LikeItem, 0, len(likes))
	for _, l := range likes {
		items = append(items, view.NewLikeItem(l))
	}
	utils.Success(c, items)
}

// ToggleLike 切换点赞（需登录）
// 首次点赞为 true，之后每次调用取反，响应带切换后的状态
func (h *Handler) ToggleLike(c *gin.Context) {
	var req ToggleReq
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

	like, err := h.Repos.Like.Toggle(middleware.GetUserID(c), req.Movie)
	if err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}

	utils.Created(c, "操作成功", view.NewLikeItem(like))
}

// ListFavorites 全部收藏记录
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.Repos.Favorite.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	items := make([]view.FavoriteItem, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, view.NewFavoriteItem(f))
	}
	utils.Success(c, items)
}

// ToggleFavorite 切换收藏（需登录），语义与点赞一致
func (h *Handler) ToggleFavorite(c *gin.Context) {
	var req ToggleReq
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

	favorite, err := h.Repos.Favorite.Toggle(middleware.GetUserID(c), req.Movie)
	if err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}

	utils.Created(c, "操作成功", view.NewFavoriteItem(favorite))
}

// RatingReq 评分请求，分值限定 0 到 5
type RatingReq struct {
	Movie  int `json:"movie" binding:"required"`
	Rating int `json:"rating" binding:"gte=0,lte=5"`
}

// ListRatings 全部评分记录
func (h *Handler) ListRatings(c *gin.Context) {
	ratings, err := h.Repos.Rating.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	items := make([]view.RatingItem, 0, len(ratings))
	for _, r := range ratings {
		items = append(items, view.NewRatingItem(r))
	}
	utils.Success(c, items)
}

// CreateRating 评分（需登录），重复评分覆盖旧值
func (h *Handler) CreateRating(c *gin.Context) {
	var req RatingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评分必须是 0 到 5 之间的整数")
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

	rating, err := h.Repos.Rating.Rate(middleware.GetUserID(c), req.Movie, req.Rating)
	if err != nil {
		utils.InternalServerError(c, "评分失败")
		return
	}

	utils.Created(c, "评分成功", view.NewRatingItem(rating))
}
