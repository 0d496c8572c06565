package request

import "cms/model"

type CreatePostRequest struct {
	Title      string           `json:"title" binding:"required,max=200"`
	Slug       string           `json:"slug" binding:"omitempty,slug"`
	Content    string           `json:"content" binding:"required"`
	Excerpt    string           `json:"excerpt"`
	CategoryID *uint64          `json:"category_id"`
	Status     model.PostStatus `json:"status"`
	TagIDs     []uint64         `json:"tag_ids"`
}

// UpdatePostRequest 部分更新：nil 字段保持不变
type UpdatePostRequest struct {
	Title         *string           `json:"title"`
	Slug          *string           `json:"slug" binding:"omitempty"`
	Content       *string           `json:"content"`
	Excerpt       *string           `json:"excerpt"`
	FeaturedImage *string           `json:"featured_image"`
	CategoryID    *uint64           `json:"category_id"` // 0 清除分类
	Status        *model.PostStatus `json:"status"`
	TagIDs        []uint64          `json:"tag_ids"`
}
