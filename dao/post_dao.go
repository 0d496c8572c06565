package dao

import (
	"cms/model"

	"gorm.io/gorm"
)

type PostDAO struct {
	db *gorm.DB
}

// NewPostDAO 创建一个新的 PostDAO 实例
func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{db: db}
}

// CreatePost inserts the post and attaches its tags inside one transaction.
// Tags are attached via the association table, never upserted, so the tag
// records themselves must already exist.
func (dao *PostDAO) CreatePost(post *model.Post, tags []model.Tag) error {
	return dao.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(post).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID 根据 ID 获取文章（含标签）
func (dao *PostDAO) GetByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := dao.db.Preload("Tags").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug 根据 slug 获取文章
func (dao *PostDAO) GetBySlug(slug string) (*model.Post, error) {
	var post model.Post
	err := dao.db.Preload("Tags").Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// SlugTaken reports whether another post (excluding excludeID) already uses
// the slug. Pass excludeID 0 for creation checks.
func (dao *PostDAO) SlugTaken(slug string, excludeID uint64) (bool, error) {
	var n int64
	err := dao.db.Model(&model.Post{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&n).Error
	return n > 0, err
}

// SavePost persists field changes and replaces the tag set when tags is
// non-nil (nil means leave tags untouched).
func (dao *PostDAO) SavePost(post *model.Post, tags []model.Tag) error {
	return dao.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Save(post).Error; err != nil {
			return err
		}
		if tags != nil {
			if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCascade removes the post, its comments and its tag associations in a
// single transaction. Comments are exclusively owned by the post.
func (dao *PostDAO) DeleteCascade(post *model.Post) error {
	return dao.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, post.ID).Error
	})
}

// IncrementViews bumps the view counter with a single SQL expression so
// concurrent readers never lose updates.
func (dao *PostDAO) IncrementViews(id uint64) error {
	res := dao.db.Model(&model.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPublished returns published posts ordered by publish time, newest first.
func (dao *PostDAO) ListPublished(limit, offset int) ([]model.Post, error) {
	var posts []model.Post
	err := dao.db.Preload("Tags").
		Where("status = ?", model.PostPublished).
		Order("published_at desc").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

// ListAll returns every post ordered by creation time, newest first.
func (dao *PostDAO) ListAll(limit, offset int) ([]model.Post, error) {
	var posts []model.Post
	err := dao.db.Preload("Tags").
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

// Count returns the total number of posts.
func (dao *PostDAO) Count() (int64, error) {
	var n int64
	err := dao.db.Model(&model.Post{}).Count(&n).Error
	return n, err
}

// CountByStatus returns the number of posts in the given status.
func (dao *PostDAO) CountByStatus(status model.PostStatus) (int64, error) {
	var n int64
	err := dao.db.Model(&model.Post{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// CountByCategory returns the number of posts referencing the category.
func (dao *PostDAO) CountByCategory(categoryID uint64) (int64, error) {
	var n int64
	err := dao.db.Model(&model.Post{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}
