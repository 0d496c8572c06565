package dao

import (
	"cms/model"

	"gorm.io/gorm"
)

type UserDAO struct {
	db *gorm.DB
}

// NewUserDAO 创建一个新的 UserDAO 实例
func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser 创建新用户
func (dao *UserDAO) CreateUser(user *model.User) error {
	return dao.db.Create(user).Error
}

// GetByID 根据 ID 获取用户
func (dao *UserDAO) GetByID(id uint64) (*model.User, error) {
	var user model.User
	err := dao.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取用户
func (dao *UserDAO) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := dao.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (dao *UserDAO) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := dao.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by creation time.
func (dao *UserDAO) List() ([]model.User, error) {
	var users []model.User
	err := dao.db.Order("created_at desc").Find(&users).Error
	return users, err
}

// Count returns the total number of users.
func (dao *UserDAO) Count() (int64, error) {
	var n int64
	err := dao.db.Model(&model.User{}).Count(&n).Error
	return n, err
}

// Save persists field changes on an existing user.
func (dao *UserDAO) Save(user *model.User) error {
	return dao.db.Save(user).Error
}
