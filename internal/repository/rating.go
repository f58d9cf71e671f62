package repository

import (
	"github.com/user/hdfilm/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Rate 评分 upsert，同一 (user, movie) 重复评分覆盖旧值
func (r *RatingRepository) Rate(userID, movieID, value int) (*model.Rating, error) {
	rating := &model.Rating{
		UserID:  userID,
		MovieID: movieID,
		Rating:  value,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating": value,
		}),
	}).Create(rating).Error
	if err != nil {
		return nil, err
	}

	var result model.Rating
	if err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAll 获取所有评分记录
func (r *RatingRepository) ListAll() ([]*model.Rating, error) {
	var ratings []*model.Rating
	err := r.db.Order("id ASC").Find(&ratings).Error
	return ratings, err
}

// ListByMovie 获取某电影的全部评分
func (r *RatingRepository) ListByMovie(movieID int) ([]*model.Rating, error) {
	var ratings []*model.Rating
	err := r.db.Where("movie_id = ?", movieID).Find(&ratings).Error
	return ratings, err
}
