package dao

import (
	"cms/model"

	"gorm.io/gorm"
)

type CommentDAO struct {
	db *gorm.DB
}

// NewCommentDAO 创建一个新的 CommentDAO 实例
func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{db: db}
}

// CreateComment 创建评论
func (dao *CommentDAO) CreateComment(comment *model.Comment) error {
	return dao.db.Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (dao *CommentDAO) GetByID(id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := dao.db.First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Save persists field changes on an existing comment.
func (dao *CommentDAO) Save(comment *model.Comment) error {
	return dao.db.Save(comment).Error
}

// ListByPost returns the comments of a post, oldest first.
func (dao *CommentDAO) ListByPost(postID uint64) ([]model.Comment, error) {
	var comments []model.Comment
	err := dao.db.Where("post_id = ?", postID).Order("created_at asc").Find(&comments).Error
	return comments, err
}

// CountByPost returns the number of comments attached to a post.
func (dao *CommentDAO) CountByPost(postID uint64) (int64, error) {
	var n int64
	err := dao.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}

// CountByStatus returns the number of comments in the given status.
func (dao *CommentDAO) CountByStatus(status model.CommentStatus) (int64, error) {
	var n int64
	err := dao.db.Model(&model.Comment{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
