package v1

import (
	"net/http"

	"cms/api/v1/request"
	"cms/service"

	"github.com/gin-gonic/gin"
)

// TaxonomyAPI exposes category and tag management.
type TaxonomyAPI struct {
	service *service.TaxonomyService
}

// NewTaxonomyAPI wires the service layer into the HTTP handlers.
func NewTaxonomyAPI(s *service.TaxonomyService) *TaxonomyAPI {
	return &TaxonomyAPI{service: s}
}

// CreateCategory 创建分类
func (t *TaxonomyAPI) CreateCategory(c *gin.Context) {
	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := t.service.CreateCategory(req.Name, req.Slug, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// ListCategories 列出所有分类
func (t *TaxonomyAPI) ListCategories(c *gin.Context) {
	categories, err := t.service.ListCategories()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// DeleteCategory rejects the delete while posts still reference it.
func (t *TaxonomyAPI) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := t.service.DeleteCategory(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// CreateTag 创建标签
func (t *TaxonomyAPI) CreateTag(c *gin.Context) {
	var req request.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, err := t.service.CreateTag(req.Name, req.Slug)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// ListTags 列出所有标签
func (t *TaxonomyAPI) ListTags(c *gin.Context) {
	tags, err := t.service.ListTags()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// DeleteTag 删除标签（同时清理关联）
func (t *TaxonomyAPI) DeleteTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := t.service.DeleteTag(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}
