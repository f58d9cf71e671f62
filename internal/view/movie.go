// Package view 把模型按操作类型整形成响应结构
// 每个操作一个纯构建函数，嵌套之间不共享可变状态
package view

import (
	"math"
	"strings"
	"time"

	"github.com/user/hdfilm/internal/model"
)

// timeLayout 时间展示格式
const timeLayout = "02 January 2006 15:04"

// MovieListItem 列表/搜索视图，省略重字段，附带聚合数据
type MovieListItem struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Premiere string  `json:"premiere"`
	Poster   string  `json:"poster"`
	Genre    string  `json:"genre"`
	Like     int     `json:"like"`
	Comment  int     `json:"comment"`
	Rating   float64 `json:"rating"`
}

// NewMovieListItem 构建列表视图，评分四舍五入到一位小数，无评分为 0
func NewMovieListItem(m *model.Movie, likes, comments int, avgRating float64) MovieListItem {
	return MovieListItem{
		ID:       m.ID,
		Title:    m.Title,
		Premiere: m.Premiere.Format(timeLayout),
		Poster:   m.Poster,
		Genre:    m.GenreSlug,
		Like:     likes,
		Comment:  comments,
		Rating:   math.Round(avgRating*10) / 10,
	}
}

// MovieDetail 详情视图，包含全部字段和嵌套数据
type MovieDetail struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Budget         int             `json:"budget"`
	Poster         string          `json:"poster"`
	Video          string          `json:"video"`
	Premiere       string          `json:"premiere"`
	Created        string          `json:"created"`
	Genre          GenreItem       `json:"genre"`
	Images         []string        `json:"images"`
	Recommendation []MovieListItem `json:"recommendation"`
	Rating         []RatingItem    `json:"rating"`
	Comments       []CommentNode   `json:"comments"`
	Like           []LikeItem      `json:"like"`
}

// NewMovieDetail 构建详情视图
// 剧照解析为绝对地址；recommendation 为同分类电影（已排除自身）；
// like 只包含当前生效的点赞
func NewMovieDetail(
	m *model.Movie,
	genre *model.Genre,
	recommendation []MovieListItem,
	ratings []*model.Rating,
	comments []*model.Comment,
	likes []*model.Like,
	siteURL string,
) MovieDetail {
	images := make([]string, 0, len(m.Images))
	for _, img := range m.Images {
		images = append(images, absURL(siteURL, img.Image))
	}

	ratingItems := make([]RatingItem, 0, len(ratings))
	for _, r := range ratings {
		ratingItems = append(ratingItems, NewRatingItem(r))
	}

	likeItems := make([]LikeItem, 0, len(likes))
	for _, l := range likes {
		likeItems = append(likeItems, NewLikeItem(l))
	}

	detail := MovieDetail{
		ID:             m.ID,
		Title:          m.Title,
		Description:    m.Description,
		Budget:         m.Budget,
		Poster:         m.Poster,
		Video:          m.Video,
		Premiere:       m.Premiere.Format(timeLayout),
		Created:        m.Created.Format(timeLayout),
		Images:         images,
		Recommendation: recommendation,
		Rating:         ratingItems,
		Comments:       BuildCommentTree(comments),
		Like:           likeItems,
	}
	if genre != nil {
		detail.Genre = NewGenreItem(genre)
	}
	return detail
}

// GenreItem 分类视图
type GenreItem struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Slug  string `json:"slug"`
}

// NewGenreItem 构建分类视图
func NewGenreItem(g *model.Genre) GenreItem {
	return GenreItem{
		Title: g.Title,
		Image: g.Image,
		Slug:  g.Slug,
	}
}

// GenreDetail 分类详情视图，嵌套列表形态的电影，避免递归膨胀
type GenreDetail struct {
	GenreItem
	Movies []MovieListItem `json:"movies"`
}

// NewGenreDetail 构建分类详情视图
func NewGenreDetail(g *model.Genre, movies []MovieListItem) GenreDetail {
	return GenreDetail{
		GenreItem: NewGenreItem(g),
		Movies:    movies,
	}
}

// absURL 把相对路径解析为站点绝对地址
func absURL(siteURL, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(siteURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// formatTime 统一时间展示
func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}
