package model

import "time"

// FileType 媒体分类，由 MIME 类型推导，不接受用户输入
type FileType string

const (
	FileImage    FileType = "image"
	FileVideo    FileType = "video"
	FileDocument FileType = "document"
)

// Media 媒体库元数据。创建后不可修改，只能删除。
type Media struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	Filename         string    `gorm:"not null;size:255" json:"filename"`
	OriginalFilename string    `gorm:"not null;size:255" json:"original_filename"`
	FilePath         string    `gorm:"not null;size:500" json:"file_path"`
	FileType         FileType  `gorm:"size:50" json:"file_type"` // image, video, document
	FileSize         int64     `json:"file_size"`                // 字节
	MimeType         string    `gorm:"size:100" json:"mime_type"`
	UploadedBy       uint64    `gorm:"not null;index" json:"uploaded_by"`
	CreatedAt        time.Time `json:"created_at"`
}
