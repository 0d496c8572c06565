package v1

import (
	"net/http"

	"cms/api/v1/request"
	"cms/middleware"
	"cms/service"

	"github.com/gin-gonic/gin"
)

// CommentAPI exposes comment submission and moderation.
type CommentAPI struct {
	service *service.CommentService
}

// NewCommentAPI wires the service layer into the HTTP handlers.
func NewCommentAPI(s *service.CommentService) *CommentAPI {
	return &CommentAPI{service: s}
}

// Submit attaches a pending comment to the post in the path.
func (a *CommentAPI) Submit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := a.service.Submit(middleware.Actor(c), id, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Moderate sets a comment's status; admin/editor only (enforced in the
// service so the permission rule lives in one place).
func (a *CommentAPI) Moderate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.ModerateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := a.service.Moderate(middleware.Actor(c), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ListForPost 列出文章下的所有评论
func (a *CommentAPI) ListForPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	comments, err := a.service.ListForPost(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
