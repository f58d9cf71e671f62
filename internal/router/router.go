package router

import (
	"github.com/gin-gonic/gin"
	"github.com/user/hdfilm/internal/config"
	"github.com/user/hdfilm/internal/handler"
	"github.com/user/hdfilm/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler, cfg *config.Config) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "site": cfg.SiteName})
	})

	// API v1，统一挂可选登录，登录态对匿名接口同样可见
	api := r.Group("/v1/api")
	api.Use(middleware.OptionalAuth(cfg.AppSecret))
	{
		// 账号
		accounts := api.Group("/accounts")
		{
			accounts.POST("/register", h.Register)
			accounts.GET("/activate/:code", h.Activate)
			accounts.POST("/login", h.Login)
			accounts.POST("/logout", middleware.RequireAuth(cfg.AppSecret), h.Logout)
		}

		// 用户，详情/修改/注销只允许本人
		users := api.Group("/users", middleware.RequireAuth(cfg.AppSecret))
		{
			users.GET("", h.ListUsers)
			users.GET("/:email", h.GetUser)
			users.PUT("/:email", h.UpdateUser)
			users.DELETE("/:email", h.DeleteUser)
		}

		// 分类，读开放，写需要管理员
		genres := api.Group("/genres")
		{
			genres.GET("", h.ListGenres)
			genres.GET("/:slug", h.GetGenre)

			admin := genres.Group("", middleware.RequireAuth(cfg.AppSecret), middleware.RequireAdmin())
			{
				admin.POST("", h.CreateGenre)
				admin.PUT("/:slug", h.UpdateGenre)
				admin.DELETE("/:slug", h.DeleteGenre)
			}
		}

		// 电影，列表和搜索开放，详情需登录（要记观看历史）
		movies := api.Group("/movies")
		{
			movies.GET("", h.ListMovies)
			movies.GET("/search", h.SearchMovies)
			movies.GET("/:id", middleware.RequireAuth(cfg.AppSecret), h.GetMovie)

			admin := movies.Group("", middleware.RequireAuth(cfg.AppSecret), middleware.RequireAdmin())
			{
				admin.POST("", h.CreateMovie)
				admin.PUT("/:id", h.UpdateMovie)
				admin.DELETE("/:id", h.DeleteMovie)
			}
		}

		// 评论，读开放，写需登录
		comments := api.Group("/comments")
		{
			comments.GET("", h.ListComments)
			comments.GET("/:id", h.GetComment)

			authed := comments.Group("", middleware.RequireAuth(cfg.AppSecret))
			{
				authed.POST("", h.CreateComment)
				authed.PUT("/:id", h.UpdateComment)
				authed.DELETE("/:id", h.DeleteComment)
			}
		}

		// 点赞/收藏/评分/历史，全部需登录
		authed := api.Group("", middleware.RequireAuth(cfg.AppSecret))
		{
			authed.GET("/likes", h.ListLikes)
			authed.POST("/likes", h.ToggleLike)
			authed.GET("/favorites", h.ListFavorites)
			authed.POST("/favorites", h.ToggleFavorite)
			authed.GET("/ratings", h.ListRatings)
			authed.POST("/ratings", h.CreateRating)
			authed.GET("/history", h.ListHistory)
		}

		// 外部影讯列表，开放
		api.GET("/pars", h.GetFeed)
	}
}
