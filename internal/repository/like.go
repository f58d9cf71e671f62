package repository

import (
	"github.com/user/hdfilm/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle 切换点赞状态
// 单条 upsert：首次插入 liked=true，冲突时对已有行取反，
// 并发的首次点赞由唯一索引仲裁
func (r *LikeRepository) Toggle(userID, movieID int) (*model.Like, error) {
	like := &model.Like{
		UserID:  userID,
		MovieID: movieID,
		Liked:   true,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"liked": gorm.Expr("NOT liked"),
		}),
	}).Create(like).Error
	if err != nil {
		return nil, err
	}

	// 重新读取，拿到切换后的真实状态
	var result model.Like
	if err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAll 获取所有点赞记录
func (r *LikeRepository) ListAll() ([]*model.Like, error) {
	var likes []*model.Like
	err := r.db.Order("id ASC").Find(&likes).Error
	return likes, err
}

// ListLikedByMovie 获取某电影当前生效的点赞
func (r *LikeRepository) ListLikedByMovie(movieID int) ([]*model.Like, error) {
	var likes []*model.Like
	err := r.db.Where("movie_id = ? AND liked = ?", movieID, true).Find(&likes).Error
	return likes, err
}

// ListLikedByUser 获取用户当前生效的点赞
func (r *LikeRepository) ListLikedByUser(userID int) ([]*model.Like, error) {
	var likes []*model.Like
	err := r.db.Where("user_id = ? AND liked = ?", userID, true).Find(&likes).Error
	return likes, err
}
