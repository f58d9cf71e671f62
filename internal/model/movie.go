package model

import (
	"time"
)

// Genre 电影分类
// slug 由标题生成，作为稳定主键
type Genre struct {
	Slug  string `json:"slug" db:"slug" gorm:"primaryKey"`
	Title string `json:"title" db:"title" gorm:"unique"`
	Image string `json:"image" db:"image"`

	Movies []Movie `json:"-" gorm:"foreignKey:GenreSlug;references:Slug;constraint:OnDelete:CASCADE"`
}

// Movie 电影模型
type Movie struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Budget      int       `json:"budget" db:"budget"`
	Poster      string    `json:"poster" db:"poster"`
	Video       string    `json:"video" db:"video"`
	Premiere    time.Time `json:"premiere" db:"premiere"`
	Created     time.Time `json:"created" db:"created" gorm:"index"`
	GenreSlug   string    `json:"genre" db:"genre_slug" gorm:"index"`

	Images []MovieImage `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
}

// MovieImage 电影剧照，随电影更新整体替换
type MovieImage struct {
	ID      int    `json:"id" db:"id"`
	MovieID int    `json:"movie_id" db:"movie_id" gorm:"index"`
	Image   string `json:"image" db:"image"`
}

// Comment 评论，parent 为空表示顶层评论
type Comment struct {
	ID       int       `json:"id" db:"id"`
	UserID   int       `json:"user" db:"user_id" gorm:"index"`
	MovieID  int       `json:"movie" db:"movie_id" gorm:"index"`
	ParentID *int      `json:"parent" db:"parent_id"`
	Text     string    `json:"text" db:"text"`
	Created  time.Time `json:"created" db:"created" gorm:"index"`
}
