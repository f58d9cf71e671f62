package handler

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/hdfilm/internal/middleware"
	"github.com/user/hdfilm/internal/model"
	"github.com/user/hdfilm/internal/utils"
	"github.com/user/hdfilm/internal/view"
)

// ListMovies 电影列表
// 可选 rating 参数只保留平均评分不低于该值的电影
func (h *Handler) ListMovies(c *gin.Context) {
	var movies []*model.Movie
	var err error

	if ratingStr := c.Query("rating"); ratingStr != "" {
		min, convErr := strconv.Atoi(ratingStr)
		if convErr != nil || min < 0 || min > 5 {
			utils.BadRequest(c, "评分参数必须是 0 到 5 之间的整数")
			return
		}
		movies, err = h.Repos.Movie.ListWithMinRating(min)
	} else {
		movies, err = h.Repos.Movie.ListAll()
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	items, err := h.buildMovieList(movies)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, items)
}

// SearchMovies 电影搜索，标题和简介的大小写不敏感子串匹配
func (h *Handler) SearchMovies(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.BadRequest(c, "请输入搜索关键词")
		return
	}

	movies, err := h.Repos.Movie.Search(q)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	items, err := h.buildMovieList(movies)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, items)
}

// GetMovie 电影详情（需登录）
// 查看详情会刷新当前用户对该电影的观看历史
func (h *Handler) GetMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	// 记录观看历史，失败只打日志不影响响应
	if userID := middleware.GetUserID(c); userID > 0 {
		if err := h.Repos.History.Touch(userID, movie.ID); err != nil {
			log.Printf("[History] 记录观看历史失败: %v", err)
		}
	}

	genre, err := h.Repos.Genre.FindBySlug(movie.GenreSlug)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	recommended, err := h.Repos.Movie.ListRecommended(movie.GenreSlug, movie.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	recommendation, err := h.buildMovieList(recommended)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	ratings, err := h.Repos.Rating.ListByMovie(movie.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	comments, err := h.Repos.Comment.ListByMovie(movie.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	likes, err := h.Repos.Like.ListLikedByMovie(movie.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, view.NewMovieDetail(movie, genre, recommendation, ratings, comments, likes, h.Config.SiteUrl))
}

// MovieReq 电影创建/更新请求
type MovieReq struct {
	Title       string   `json:"title" binding:"required,max=150"`
	Description string   `json:"description"`
	Budget      int      `json:"budget" binding:"gte=0"`
	Poster      string   `json:"poster"`
	Video       string   `json:"video"`
	Premiere    string   `json:"premiere"`
	Genre       string   `json:"genre" binding:"required"`
	Images      []string `json:"images"`
}

// CreateMovie 创建电影（管理员）
func (h *Handler) CreateMovie(c *gin.Context) {
	var req MovieReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "无效的请求数据")
		return
	}

	genre, err := h.Repos.Genre.FindBySlug(req.Genre)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if genre == nil {
		utils.BadRequest(c, "分类不存在")
		return
	}

	movie := &model.Movie{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Poster:      req.Poster,
		Video:       req.Video,
		GenreSlug:   genre.Slug,
	}
	if req.Premiere != "" {
		premiere, parseErr := time.Parse("2006-01-02", req.Premiere)
		if parseErr != nil {
			utils.BadRequest(c, "上映日期格式应为 YYYY-MM-DD")
			return
		}
		movie.Premiere = premiere
	}

	if err := h.Repos.Movie.Create(movie, req.Images); err != nil {
		utils.InternalServerError(c, "创建电影失败")
		return
	}

	created, err := h.Repos.Movie.FindByID(movie.ID)
	if err != nil || created == nil {
		utils.InternalServerError(c, "")
		return
	}
	stats, err := h.Repos.Movie.Stats(created.ID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Created(c, "创建成功", view.NewMovieListItem(created, int(stats.Likes), int(stats.Comments), stats.AvgRating))
}

// UpdateMovie 更新电影（管理员），剧照整体替换
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	var req MovieReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "无效的请求数据")
		return
	}

	genre, err := h.Repos.Genre.FindBySlug(req.Genre)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if genre == nil {
		utils.BadRequest(c, "分类不存在")
		return
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.Budget = req.Budget
	movie.Poster = req.Poster
	movie.Video = req.Video
	movie.GenreSlug = genre.Slug

	if err := h.Repos.Movie.Update(movie, req.Images); err != nil {
		utils.InternalServerError(c, "更新电影失败")
		return
	}

	updated, err := h.Repos.Movie.FindByID(id)
	if err != nil || updated == nil {
		utils.InternalServerError(c, "")
		return
	}
	stats, err := h.Repos.Movie.Stats(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, view.NewMovieListItem(updated, int(stats.Likes), int(stats.Comments), stats.AvgRating))
}

// DeleteMovie 删除电影（管理员），关联数据一并删除
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	if err := h.Repos.Movie.Delete(id); err != nil {
		utils.InternalServerError(c, "删除电影失败")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
