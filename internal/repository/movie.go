package repository

import (
	"errors"
	"time"

	"github.com/user/hdfilm/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// MovieStats 列表视图用的聚合数据
type MovieStats struct {
	Likes     int64
	Comments  int64
	AvgRating float64
}

// Create 创建电影及其剧照
func (r *MovieRepository) Create(movie *model.Movie, images []string) error {
	now := time.Now()
	movie.Created = now
	if movie.Premiere.IsZero() {
		movie.Premiere = now
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movie).Error; err != nil {
			return err
		}
		for _, img := range images {
			if err := tx.Create(&model.MovieImage{MovieID: movie.ID, Image: img}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update 更新电影，剧照整体替换
func (r *MovieRepository) Update(movie *model.Movie, images []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Movie{}).Where("id = ?", movie.ID).
			Updates(map[string]interface{}{
				"title":       movie.Title,
				"description": movie.Description,
				"budget":      movie.Budget,
				"poster":      movie.Poster,
				"video":       movie.Video,
				"premiere":    time.Now(),
				"genre_slug":  movie.GenreSlug,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("movie_id = ?", movie.ID).Delete(&model.MovieImage{}).Error; err != nil {
			return err
		}
		for _, img := range images {
			if err := tx.Create(&model.MovieImage{MovieID: movie.ID, Image: img}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID 根据 ID 查找电影（带剧照）
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Preload("Images").First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// ListAll 获取电影列表，默认按创建时间倒序
func (r *MovieRepository) ListAll() ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Order("created DESC").Find(&movies).Error
	return movies, err
}

// ListByGenre 获取某分类下的所有电影
func (r *MovieRepository) ListByGenre(genreSlug string) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Where("genre_slug = ?", genreSlug).Order("created DESC").Find(&movies).Error
	return movies, err
}

// ListRecommended 获取同分类的其他电影（排除自身）
func (r *MovieRepository) ListRecommended(genreSlug string, excludeID int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Where("genre_slug = ? AND id <> ?", genreSlug, excludeID).
		Order("created DESC").Find(&movies).Error
	return movies, err
}

// ListWithMinRating 只保留平均评分不低于 min 的电影
func (r *MovieRepository) ListWithMinRating(min int) ([]*model.Movie, error) {
	var movies []*model.Movie
	sub := r.db.Model(&model.Rating{}).Select("movie_id").
		Group("movie_id").Having("AVG(rating) >= ?", min)
	err := r.db.Where("id IN (?)", sub).Order("created DESC").Find(&movies).Error
	return movies, err
}

// Search 标题或简介的大小写不敏感子串搜索
func (r *MovieRepository) Search(q string) ([]*model.Movie, error) {
	var movies []*model.Movie
	pattern := "%" + q + "%"
	err := r.db.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Order("created DESC").Find(&movies).Error
	return movies, err
}

// Stats 获取单部电影的点赞数、评论数和平均评分（无评分时为 0）
func (r *MovieRepository) Stats(movieID int) (*MovieStats, error) {
	stats := &MovieStats{}

	if err := r.db.Model(&model.Like{}).
		Where("movie_id = ? AND liked = ?", movieID, true).
		Count(&stats.Likes).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Comment{}).
		Where("movie_id = ?", movieID).
		Count(&stats.Comments).Error; err != nil {
		return nil, err
	}

	var avg *float64
	if err := r.db.Model(&model.Rating{}).
		Where("movie_id = ?", movieID).
		Select("AVG(rating)").Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AvgRating = *avg
	}

	return stats, nil
}

// Delete 删除电影并级联删除剧照、评论、点赞、收藏、评分和历史
func (r *MovieRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteMovieChildren(tx, []int{id}); err != nil {
			return err
		}
		return tx.Delete(&model.Movie{}, id).Error
	})
}

// deleteMovieChildren 删除电影的所有关联数据
func deleteMovieChildren(tx *gorm.DB, movieIDs []int) error {
	if err := tx.Where("movie_id IN ?", movieIDs).Delete(&model.MovieImage{}).Error; err != nil {
		return err
	}
	// 评论按 movie_id 删除，子评论一并覆盖
	if err := tx.Where("movie_id IN ?", movieIDs).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("movie_id IN ?", movieIDs).Delete(&model.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("movie_id IN ?", movieIDs).Delete(&model.Favorite{}).Error; err != nil {
		return err
	}
	if err := tx.Where("movie_id IN ?", movieIDs).Delete(&model.Rating{}).Error; err != nil {
		return err
	}
	return tx.Where("movie_id IN ?", movieIDs).Delete(&model.History{}).Error
}
