package v1

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"cms/config"
	"cms/middleware"
	"cms/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaAPI is the upload boundary in front of the asset registry: it stores
// the byte stream on disk and hands the resulting metadata to the service.
type MediaAPI struct {
	service *service.MediaService
}

// NewMediaAPI wires the service layer into the HTTP handlers.
func NewMediaAPI(s *service.MediaService) *MediaAPI {
	return &MediaAPI{service: s}
}

// Upload accepts a multipart file, stores it under a random name and
// registers the metadata record.
func (m *MediaAPI) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	maxBytes := config.GlobalConfig.Upload.MaxBytes
	if file.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("file exceeds %d bytes", maxBytes)})
		return
	}

	// 随机存储文件名，避免用户可控路径
	stored := uuid.NewString() + filepath.Ext(file.Filename)
	dir := config.GlobalConfig.Upload.Dir
	dst := filepath.Join(dir, stored)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload dir unavailable"})
		return
	}
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return
	}

	media, err := m.service.Register(middleware.Actor(c), service.RegisterMediaInput{
		Filename:         stored,
		OriginalFilename: filepath.Base(file.Filename),
		FilePath:         dst,
		FileSize:         file.Size,
		MimeType:         file.Header.Get("Content-Type"),
	})
	if err != nil {
		_ = os.Remove(dst) // 元数据失败时不留下孤儿文件
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, media)
}

// List returns the media library.
func (m *MediaAPI) List(c *gin.Context) {
	media, err := m.service.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// Delete removes the metadata record and, best-effort, the stored file.
// Posts still referencing the file keep their dangling reference.
func (m *MediaAPI) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	media, err := m.service.Delete(middleware.Actor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	_ = os.Remove(media.FilePath)
	c.JSON(http.StatusOK, gin.H{"message": "media deleted"})
}
