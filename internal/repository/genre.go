package repository

import (
	"errors"

	"github.com/gosimple/slug"
	"github.com/user/hdfilm/internal/model"
	"gorm.io/gorm"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// Create 创建分类，slug 为空时由标题生成
func (r *GenreRepository) Create(genre *model.Genre) error {
	if genre.Slug == "" {
		genre.Slug = slug.Make(genre.Title)
	}
	return r.db.Create(genre).Error
}

// FindBySlug 根据 slug 查找分类
func (r *GenreRepository) FindBySlug(s string) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.Where("slug = ?", s).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &genre, nil
}

// ListAll 获取所有分类
func (r *GenreRepository) ListAll() ([]*model.Genre, error) {
	var genres []*model.Genre
	err := r.db.Order("slug ASC").Find(&genres).Error
	return genres, err
}

// Update 更新分类标题和图片，slug 保持不变
func (r *GenreRepository) Update(s string, title, image string) error {
	return r.db.Model(&model.Genre{}).Where("slug = ?", s).
		Updates(map[string]interface{}{
			"title": title,
			"image": image,
		}).Error
}

// Delete 删除分类并级联删除其下所有电影
func (r *GenreRepository) Delete(s string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var movieIDs []int
		if err := tx.Model(&model.Movie{}).Where("genre_slug = ?", s).
			Pluck("id", &movieIDs).Error; err != nil {
			return err
		}

		if len(movieIDs) > 0 {
			if err := deleteMovieChildren(tx, movieIDs); err != nil {
				return err
			}
			if err := tx.Delete(&model.Movie{}, movieIDs).Error; err != nil {
				return err
			}
		}

		return tx.Where("slug = ?", s).Delete(&model.Genre{}).Error
	})
}
