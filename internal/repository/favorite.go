package repository

import (
	"github.com/user/hdfilm/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Toggle 切换收藏状态，语义与点赞一致
func (r *FavoriteRepository) Toggle(userID, movieID int) (*model.Favorite, error) {
	favorite := &model.Favorite{
		UserID:    userID,
		MovieID:   movieID,
		Favorited: true,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"favorited": gorm.Expr("NOT favorited"),
		}),
	}).Create(favorite).Error
	if err != nil {
		return nil, err
	}

	var result model.Favorite
	if err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAll 获取所有收藏记录
func (r *FavoriteRepository) ListAll() ([]*model.Favorite, error) {
	var favorites []*model.Favorite
	err := r.db.Order("id ASC").Find(&favorites).Error
	return favorites, err
}

// ListFavoritedByUser 获取用户当前生效的收藏
func (r *FavoriteRepository) ListFavoritedByUser(userID int) ([]*model.Favorite, error) {
	var favorites []*model.Favorite
	err := r.db.Where("user_id = ? AND favorited = ?", userID, true).Find(&favorites).Error
	return favorites, err
}
