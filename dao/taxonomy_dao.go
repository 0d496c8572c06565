package dao

import (
	"cms/model"

	"gorm.io/gorm"
)

type TaxonomyDAO struct {
	db *gorm.DB
}

// NewTaxonomyDAO 创建一个新的 TaxonomyDAO 实例
func NewTaxonomyDAO(db *gorm.DB) *TaxonomyDAO {
	return &TaxonomyDAO{db: db}
}

// CreateCategory 创建分类
func (dao *TaxonomyDAO) CreateCategory(category *model.Category) error {
	return dao.db.Create(category).Error
}

// GetCategoryByID 根据 ID 获取分类
func (dao *TaxonomyDAO) GetCategoryByID(id uint64) (*model.Category, error) {
	var category model.Category
	err := dao.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns all categories ordered by name.
func (dao *TaxonomyDAO) ListCategories() ([]model.Category, error) {
	var categories []model.Category
	err := dao.db.Order("name asc").Find(&categories).Error
	return categories, err
}

// DeleteCategory 删除分类
func (dao *TaxonomyDAO) DeleteCategory(id uint64) error {
	return dao.db.Delete(&model.Category{}, id).Error
}

// CategoryNameTaken reports whether a category already uses the name.
func (dao *TaxonomyDAO) CategoryNameTaken(name string) (bool, error) {
	var n int64
	err := dao.db.Model(&model.Category{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

// CategorySlugTaken reports whether a category already uses the slug.
func (dao *TaxonomyDAO) CategorySlugTaken(slug string) (bool, error) {
	var n int64
	err := dao.db.Model(&model.Category{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

// TagNameTaken reports whether a tag already uses the name.
func (dao *TaxonomyDAO) TagNameTaken(name string) (bool, error) {
	var n int64
	err := dao.db.Model(&model.Tag{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

// TagSlugTaken reports whether a tag already uses the slug.
func (dao *TaxonomyDAO) TagSlugTaken(slug string) (bool, error) {
	var n int64
	err := dao.db.Model(&model.Tag{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

// CountCategories returns the total number of categories.
func (dao *TaxonomyDAO) CountCategories() (int64, error) {
	var n int64
	err := dao.db.Model(&model.Category{}).Count(&n).Error
	return n, err
}

// CreateTag 创建标签
func (dao *TaxonomyDAO) CreateTag(tag *model.Tag) error {
	return dao.db.Create(tag).Error
}

// GetTagsByIDs loads the tags for the given ids; missing ids are simply
// absent from the result, callers decide whether that is an error.
func (dao *TaxonomyDAO) GetTagsByIDs(ids []uint64) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := dao.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

// ListTags returns all tags ordered by name.
func (dao *TaxonomyDAO) ListTags() ([]model.Tag, error) {
	var tags []model.Tag
	err := dao.db.Order("name asc").Find(&tags).Error
	return tags, err
}

// DeleteTag removes the tag and its post associations in one transaction.
func (dao *TaxonomyDAO) DeleteTag(id uint64) error {
	return dao.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, id).Error
	})
}
