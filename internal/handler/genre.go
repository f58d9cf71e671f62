package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/hdfilm/internal/model"
	"github.com/user/hdfilm/internal/utils"
	"github.com/user/hdfilm/internal/view"
)

// ListGenres 分类列表
func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.Repos.Genre.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	items := make([]view.GenreItem, 0, len(genres))
	for _, g := range genres {
		items = append(items, view.NewGenreItem(g))
	}
	utils.Success(c, items)
}

// GetGenre 分类详情，嵌套该分类下的电影列表
func (h *Handler) GetGenre(c *gin.Context) {
	genre, err := h.Repos.Genre.FindBySlug(c.Param("slug"))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if genre == nil {
		utils.NotFound(c, "分类不存在")
		return
	}

	movies, err := h.Repos.Movie.ListByGenre(genre.Slug)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	items, err := h.buildMovieList(movies)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, view.NewGenreDetail(genre, items))
}

// GenreReq 分类创建/更新请求
// slug 由服务端从标题生成，不接受客户端提交
type GenreReq struct {
	Title string `json:"title" binding:"required,max=75"`
	Image string `json:"image"`
}

// CreateGenre 创建分类（管理员）
func (h *Handler) CreateGenre(c *gin.Context) {
	var req GenreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "无效的请求数据")
		return
	}

	genre := &model.Genre{
		Title: req.Title,
		Image: req.Image,
	}
	if err := h.Repos.Genre.Create(genre); err != nil {
		utils.InternalServerError(c, "创建分类失败")
		return
	}

	utils.Created(c, "创建成功", view.NewGenreItem(genre))
}

// UpdateGenre 更新分类（管理员），slug 保持不变
func (h *Handler) UpdateGenre(c *gin.Context) {
	s := c.Param("slug")

	genre, err := h.Repos.Genre.FindBySlug(s)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if genre == nil {
		utils.NotFound(c, "分类不存在")
		return
	}

	var req GenreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "无效的请求数据")
		return
	}

	if err := h.Repos.Genre.Update(s, req.Title, req.Image); err != nil {
		utils.InternalServerError(c, "更新分类失败")
		return
	}

	genre.Title = req.Title
	genre.Image = req.Image
	utils.Success(c, view.NewGenreItem(genre))
}

// DeleteGenre 删除分类（管理员），其下电影一并删除
func (h *Handler) DeleteGenre(c *gin.Context) {
	s := c.Param("slug")

	genre, err := h.Repos.Genre.FindBySlug(s)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if genre == nil {
		utils.NotFound(c, "分类不存在")
		return
	}

	if err := h.Repos.Genre.Delete(s); err != nil {
		utils.InternalServerError(c, "删除分类失败")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
