package repository

import (
	"errors"
	"time"

	"github.com/user/hdfilm/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	comment.Created = time.Now()
	return r.db.Create(comment).Error
}

// FindByID 根据 ID 查找评论
func (r *CommentRepository) FindByID(id int) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListAll 获取所有评论，按时间倒序
func (r *CommentRepository) ListAll() ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Order("created DESC").Find(&comments).Error
	return comments, err
}

// ListByMovie 获取某电影的全部评论（含子评论），供一次性构建评论树
func (r *CommentRepository) ListByMovie(movieID int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Where("movie_id = ?", movieID).Order("created DESC").Find(&comments).Error
	return comments, err
}

// UpdateText 更新评论内容
func (r *CommentRepository) UpdateText(id int, text string) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"text":    text,
			"created": time.Now(),
		}).Error
}

// Delete 删除评论并递归删除其子评论
func (r *CommentRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		all, err := collectCommentTree(tx, []int{id})
		if err != nil {
			return err
		}
		return tx.Delete(&model.Comment{}, all).Error
	})
}

// collectCommentTree 逐层收集给定评论及其全部子孙的 ID
// 子评论不限作者，回复别人的评论同样会被收进来
func collectCommentTree(tx *gorm.DB, roots []int) ([]int, error) {
	all := append([]int{}, roots...)
	frontier := roots
	for len(frontier) > 0 {
		var children []int
		if err := tx.Model(&model.Comment{}).Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		all = append(all, children...)
		frontier = children
	}
	return all, nil
}
