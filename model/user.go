package model

import "time"

// Role 用户角色（封闭枚举）
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleAuthor Role = "author"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleAuthor:
		return true
	}
	return false
}

// User 用户模型
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:80" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null;size:120" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"` // 忽略JSON序列化
	Role         Role      `gorm:"not null;size:20;default:author" json:"role"`
	FullName     string    `gorm:"size:100" json:"full_name"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
