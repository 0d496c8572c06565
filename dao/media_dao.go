package dao

import (
	"cms/model"

	"gorm.io/gorm"
)

type MediaDAO struct {
	db *gorm.DB
}

// NewMediaDAO 创建一个新的 MediaDAO 实例
func NewMediaDAO(db *gorm.DB) *MediaDAO {
	return &MediaDAO{db: db}
}

// CreateMedia 创建媒体记录
func (dao *MediaDAO) CreateMedia(media *model.Media) error {
	return dao.db.Create(media).Error
}

// GetByID 根据 ID 获取媒体记录
func (dao *MediaDAO) GetByID(id uint64) (*model.Media, error) {
	var media model.Media
	err := dao.db.First(&media, id).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// Delete 删除媒体记录
func (dao *MediaDAO) Delete(id uint64) error {
	return dao.db.Delete(&model.Media{}, id).Error
}

// List returns media records, newest first.
func (dao *MediaDAO) List() ([]model.Media, error) {
	var media []model.Media
	err := dao.db.Order("created_at desc").Find(&media).Error
	return media, err
}
