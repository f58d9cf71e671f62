package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/hdfilm/internal/utils"
)

// GetFeed 外部影讯列表，结果有缓存
func (h *Handler) GetFeed(c *gin.Context) {
	items, err := h.Scraper.Fetch(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "获取影讯失败")
		return
	}
	utils.Success(c, items)
}
