package repository

import (
	"fmt"

	"github.com/user/hdfilm/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取连接池失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// Migrate 自动迁移所有模型
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Genre{},
		&model.Movie{},
		&model.MovieImage{},
		&model.Comment{},
		&model.Like{},
		&model.Favorite{},
		&model.Rating{},
		&model.History{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB       *gorm.DB
	User     *UserRepository
	Genre    *GenreRepository
	Movie    *MovieRepository
	Comment  *CommentRepository
	Like     *LikeRepository
	Favorite *FavoriteRepository
	Rating   *RatingRepository
	History  *HistoryRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		User:     NewUserRepository(db),
		Genre:    NewGenreRepository(db),
		Movie:    NewMovieRepository(db),
		Comment:  NewCommentRepository(db),
		Like:     NewLikeRepository(db),
		Favorite: NewFavoriteRepository(db),
		Rating:   NewRatingRepository(db),
		History:  NewHistoryRepository(db),
	}
}
