package model

import "time"

// PostStatus 文章状态
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

// Valid reports whether the status is one of the known values.
func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}

// Post 文章模型
//
// Slug is the public addressing key and unique across all posts; the title
// is not. PublishedAt is stamped the first time the post enters published
// and never touched again. AuthorID never changes after creation.
type Post struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	Title         string     `gorm:"not null;size:200" json:"title"`
	Slug          string     `gorm:"uniqueIndex;not null;size:200" json:"slug"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Excerpt       string     `gorm:"type:text" json:"excerpt"`
	FeaturedImage string     `gorm:"size:255" json:"featured_image"`
	Status        PostStatus `gorm:"not null;size:20;default:draft" json:"status"` // draft, published, archived
	Views         int64      `gorm:"not null;default:0" json:"views"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at"`
	AuthorID      uint64     `gorm:"not null;index" json:"author_id"`
	CategoryID    *uint64    `gorm:"index" json:"category_id"`
	Tags          []Tag      `gorm:"many2many:post_tags" json:"tags,omitempty"`
}
