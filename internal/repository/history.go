package repository

import (
	"time"

	"github.com/user/hdfilm/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Touch 记录一次观看：不存在则插入，存在则刷新时间戳
func (r *HistoryRepository) Touch(userID, movieID int) error {
	now := time.Now()
	history := &model.History{
		UserID:  userID,
		MovieID: movieID,
		Created: now,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"created": now,
		}),
	}).Create(history).Error
}

// ListByUser 获取用户观看历史，最近观看在前
func (r *HistoryRepository) ListByUser(userID int) ([]*model.History, error) {
	var histories []*model.History
	err := r.db.Where("user_id = ?", userID).Order("created DESC").Find(&histories).Error
	return histories, err
}

// CountByUser 统计用户观看历史数量
func (r *HistoryRepository) CountByUser(userID int) (int, error) {
	var count int64
	err := r.db.Model(&model.History{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}
