package view

import (
	"github.com/user/hdfilm/internal/model"
)

// UserItem 用户列表视图，只暴露邮箱和用户名
type UserItem struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// NewUserItem 构建用户列表视图
func NewUserItem(u *model.User) UserItem {
	return UserItem{
		Email:    u.Email,
		Username: u.Username,
	}
}

// UserDetail 用户详情视图，嵌套收藏、点赞和观看历史
type UserDetail struct {
	UserItem
	Favorites []FavoriteItem `json:"favorites"`
	Likes     []LikeItem     `json:"likes"`
	History   []HistoryItem  `json:"history"`
}

// NewUserDetail 构建用户详情视图
// favorites/likes 只包含当前生效的记录
func NewUserDetail(u *model.User, favorites []*model.Favorite, likes []*model.Like, histories []*model.History) UserDetail {
	favoriteItems := make([]FavoriteItem, 0, len(favorites))
	for _, f := range favorites {
		favoriteItems = append(favoriteItems, NewFavoriteItem(f))
	}

	likeItems := make([]LikeItem, 0, len(likes))
	for _, l := range likes {
		likeItems = append(likeItems, NewLikeItem(l))
	}

	historyItems := make([]HistoryItem, 0, len(histories))
	for _, h := range histories {
		historyItems = append(historyItems, NewHistoryItem(h))
	}

	return UserDetail{
		UserItem:  NewUserItem(u),
		Favorites: favoriteItems,
		Likes:     likeItems,
		History:   historyItems,
	}
}

// LikeItem 点赞视图，始终带切换后的状态
type LikeItem struct {
	ID    int  `json:"id"`
	Movie int  `json:"movie"`
	User  int  `json:"user"`
	Like  bool `json:"like"`
}

// NewLikeItem 构建点赞视图
func NewLikeItem(l *model.Like) LikeItem {
	return LikeItem{
		ID:    l.ID,
		Movie: l.MovieID,
		User:  l.UserID,
		Like:  l.Liked,
	}
}

// FavoriteItem 收藏视图
type FavoriteItem struct {
	ID       int  `json:"id"`
	Movie    int  `json:"movie"`
	User     int  `json:"user"`
	Favorite bool `json:"favorite"`
}

// NewFavoriteItem 构建收藏视图
func NewFavoriteItem(f *model.Favorite) FavoriteItem {
	return FavoriteItem{
		ID:       f.ID,
		Movie:    f.MovieID,
		User:     f.UserID,
		Favorite: f.Favorited,
	}
}

// RatingItem 评分视图
type RatingItem struct {
	Movie  int `json:"movie"`
	User   int `json:"user"`
	Rating int `json:"rating"`
}

// NewRatingItem 构建评分视图
func NewRatingItem(r *model.Rating) RatingItem {
	return RatingItem{
		Movie:  r.MovieID,
		User:   r.UserID,
		Rating: r.Rating,
	}
}

// HistoryItem 观看历史视图
type HistoryItem struct {
	ID      int    `json:"id"`
	Movie   int    `json:"movie"`
	User    int    `json:"user"`
	Created string `json:"created"`
}

// NewHistoryItem 构建观看历史视图
func NewHistoryItem(h *model.History) HistoryItem {
	return HistoryItem{
		ID:      h.ID,
		Movie:   h.MovieID,
		User:    h.UserID,
		Created: formatTime(h.Created),
	}
}
