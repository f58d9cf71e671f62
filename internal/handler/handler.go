package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/hdfilm/internal/config"
	"github.com/user/hdfilm/internal/model"
	"github.com/user/hdfilm/internal/repository"
	"github.com/user/hdfilm/internal/service"
	"github.com/user/hdfilm/internal/view"
)

// 注册 notblank 校验：required 放行纯空白字符串，评论正文需要更严格的检查
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}

// Handler HTTP 处理器
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	Mailer  *service.Mailer
	Scraper *service.FeedScraper
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:   repos,
		Config:  cfg,
		Mailer:  service.NewMailer(cfg),
		Scraper: service.NewFeedScraper(cfg.FeedUrl, 10*time.Second),
	}
}

// buildMovieList 把电影集合整形为列表视图（带聚合数据）
func (h *Handler) buildMovieList(movies []*model.Movie) ([]view.MovieListItem, error) {
	items := make([]view.MovieListItem, 0, len(movies))
	for _, m := range movies {
		stats, err := h.Repos.Movie.Stats(m.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, view.NewMovieListItem(m, int(stats.Likes), int(stats.Comments), stats.AvgRating))
	}
	return items, nil
}
