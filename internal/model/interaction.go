package model

import (
	"time"
)

// Like 点赞
// (user_id, movie_id) 唯一，首次切换插入 true，之后每次取反
type Like struct {
	ID      int  `json:"id" db:"id"`
	UserID  int  `json:"user" db:"user_id" gorm:"uniqueIndex:idx_like_user_movie"`
	MovieID int  `json:"movie" db:"movie_id" gorm:"uniqueIndex:idx_like_user_movie"`
	Liked   bool `json:"like" db:"liked"`
}

// Favorite 收藏，切换语义与 Like 一致
type Favorite struct {
	ID        int  `json:"id" db:"id"`
	UserID    int  `json:"user" db:"user_id" gorm:"uniqueIndex:idx_favorite_user_movie"`
	MovieID   int  `json:"movie" db:"movie_id" gorm:"uniqueIndex:idx_favorite_user_movie"`
	Favorited bool `json:"favorite" db:"favorited"`
}

// Rating 评分，0-5，重复评分覆盖旧值
type Rating struct {
	ID      int `json:"id" db:"id"`
	UserID  int `json:"user" db:"user_id" gorm:"uniqueIndex:idx_rating_user_movie"`
	MovieID int `json:"movie" db:"movie_id" gorm:"uniqueIndex:idx_rating_user_movie"`
	Rating  int `json:"rating" db:"rating"`
}

// History 观看历史，每次查看详情刷新时间戳
type History struct {
	ID      int       `json:"id" db:"id"`
	UserID  int       `json:"user" db:"user_id" gorm:"uniqueIndex:idx_history_user_movie"`
	MovieID int       `json:"movie" db:"movie_id" gorm:"uniqueIndex:idx_history_user_movie"`
	Created time.Time `json:"created" db:"created" gorm:"index"`
}
