package service

import (
	"strings"

	"cms/dao"
	"cms/internal/apperr"
	"cms/internal/metrics"
	"cms/model"
)

// MediaService is the asset registry: immutable metadata records for
// uploaded files. The actual byte stream is handled by the upload boundary.
type MediaService struct {
	media *dao.MediaDAO
}

// NewMediaService 创建一个新的 MediaService 实例
func NewMediaService(media *dao.MediaDAO) *MediaService {
	return &MediaService{media: media}
}

// ClassifyFileType maps a MIME type onto the coarse library classification.
// Pure and deterministic; never taken from user input.
func ClassifyFileType(mimeType string) model.FileType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return model.FileImage
	case strings.HasPrefix(mimeType, "video/"):
		return model.FileVideo
	default:
		return model.FileDocument
	}
}

// RegisterInput 媒体登记输入
type RegisterMediaInput struct {
	Filename         string // 存储文件名
	OriginalFilename string
	FilePath         string
	FileSize         int64
	MimeType         string
}

// Register records the metadata for a stored file, owned by the actor.
func (s *MediaService) Register(actor *model.User, in RegisterMediaInput) (*model.Media, error) {
	if in.Filename == "" || in.OriginalFilename == "" || in.FilePath == "" {
		return nil, apperr.New(apperr.KindValidation, "filename and path are required")
	}
	media := &model.Media{
		Filename:         in.Filename,
		OriginalFilename: in.OriginalFilename,
		FilePath:         in.FilePath,
		FileType:         ClassifyFileType(in.MimeType),
		FileSize:         in.FileSize,
		MimeType:         in.MimeType,
		UploadedBy:       actor.ID,
	}
	if err := s.media.CreateMedia(media); err != nil {
		return nil, apperr.Storage(err)
	}
	metrics.IncMediaUpload(string(media.FileType))
	return media, nil
}

// Delete removes the metadata record. Only the uploader or an admin may
// delete. Posts referencing the file as featured image are left alone;
// dangling references are an accepted limitation.
func (s *MediaService) Delete(actor *model.User, mediaID uint64) (*model.Media, error) {
	media, err := s.media.GetByID(mediaID)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperr.New(apperr.KindNotFound, "media not found")
		}
		return nil, apperr.Storage(err)
	}
	if actor.ID != media.UploadedBy && actor.Role != model.RoleAdmin {
		return nil, apperr.New(apperr.KindForbidden, "not the uploader")
	}
	if err := s.media.Delete(mediaID); err != nil {
		return nil, apperr.Storage(err)
	}
	return media, nil
}

// List returns the media library, newest first.
func (s *MediaService) List() ([]model.Media, error) {
	media, err := s.media.List()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return media, nil
}
