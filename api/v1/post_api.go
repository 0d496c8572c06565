package v1

import (
	"net/http"
	"time"

	"cms/api/v1/request"
	"cms/middleware"
	"cms/service"

	"github.com/gin-gonic/gin"
)

// PostAPI exposes the content engine over HTTP.
type PostAPI struct {
	service *service.PostService
}

// NewPostAPI wires the service layer into the HTTP handlers.
func NewPostAPI(s *service.PostService) *PostAPI {
	return &PostAPI{service: s}
}

// feedItem 公共列表的精简视图
type feedItem struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	PublishedAt *time.Time `json:"published_at"`
}

// ListPublished is the public feed: published posts only, newest publish
// first.
func (p *PostAPI) ListPublished(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	offset := queryInt(c, "offset", 0)
	posts, err := p.service.ListPublished(limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]feedItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, feedItem{
			ID:          post.ID,
			Title:       post.Title,
			Slug:        post.Slug,
			Excerpt:     post.Excerpt,
			PublishedAt: post.PublishedAt,
		})
	}
	c.JSON(http.StatusOK, items)
}

// ListAll is the dashboard listing: every post, newest created first.
func (p *PostAPI) ListAll(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	offset := queryInt(c, "offset", 0)
	posts, err := p.service.ListAll(limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// View returns a single post and bumps its view counter by exactly one.
func (p *PostAPI) View(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	post, err := p.service.View(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Create handles new post creation for the authenticated actor.
func (p *PostAPI) Create(c *gin.Context) {
	var req request.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := p.service.Create(middleware.Actor(c), service.CreatePostInput{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CategoryID: req.CategoryID,
		Status:     req.Status,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Update applies a partial update under the ownership/admin rule.
func (p *PostAPI) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := p.service.Update(middleware.Actor(c), id, service.UpdatePostInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		CategoryID:    req.CategoryID,
		Status:        req.Status,
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete removes the post and its comments.
func (p *PostAPI) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := p.service.Delete(middleware.Actor(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
