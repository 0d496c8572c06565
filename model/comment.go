package model

import "time"

// CommentStatus 评论审核状态
type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentSpam     CommentStatus = "spam"
)

// Valid reports whether the status is one of the known values.
func (s CommentStatus) Valid() bool {
	switch s {
	case CommentPending, CommentApproved, CommentSpam:
		return true
	}
	return false
}

// Comment 评论模型。评论归属于文章，文章删除时级联删除。
type Comment struct {
	ID        uint64        `gorm:"primarykey" json:"id"`
	Content   string        `gorm:"type:text;not null" json:"content"`
	Status    CommentStatus `gorm:"not null;size:20;default:pending" json:"status"` // pending, approved, spam
	PostID    uint64        `gorm:"not null;index" json:"post_id"`
	AuthorID  uint64        `gorm:"not null;index" json:"author_id"`
	CreatedAt time.Time     `json:"created_at"`
}
