package service

import (
	"cms/dao"
	"cms/internal/apperr"
	"cms/internal/metrics"
	"cms/model"
)

// CommentService handles comment submission and the tri-state moderation
// workflow.
type CommentService struct {
	comments *dao.CommentDAO
	posts    *dao.PostDAO
}

// NewCommentService 创建一个新的 CommentService 实例
func NewCommentService(comments *dao.CommentDAO, posts *dao.PostDAO) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Submit attaches a new comment to the post. Every comment starts out
// pending, regardless of who wrote it.
func (s *CommentService) Submit(actor *model.User, postID uint64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, apperr.New(apperr.KindValidation, "content is required")
	}
	if _, err := s.posts.GetByID(postID); err != nil {
		if isNotFoundErr(err) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Storage(err)
	}
	comment := &model.Comment{
		Content:  content,
		Status:   model.CommentPending,
		PostID:   postID,
		AuthorID: actor.ID,
	}
	if err := s.comments.CreateComment(comment); err != nil {
		return nil, apperr.Storage(err)
	}
	return comment, nil
}

// Moderate sets a comment's status. Restricted to admin/editor; any
// transition among pending/approved/spam is allowed, including a no-op.
func (s *CommentService) Moderate(actor *model.User, commentID uint64, status model.CommentStatus) (*model.Comment, error) {
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleEditor {
		return nil, apperr.New(apperr.KindForbidden, "moderation requires admin or editor")
	}
	if !status.Valid() {
		return nil, apperr.Newf(apperr.KindValidation, "unknown status %q", status)
	}
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperr.New(apperr.KindNotFound, "comment not found")
		}
		return nil, apperr.Storage(err)
	}
	comment.Status = status
	if err := s.comments.Save(comment); err != nil {
		return nil, apperr.Storage(err)
	}
	metrics.IncModeration(string(status))
	return comment, nil
}

// ListForPost returns a post's comments, oldest first.
func (s *CommentService) ListForPost(postID uint64) ([]model.Comment, error) {
	if _, err := s.posts.GetByID(postID); err != nil {
		if isNotFoundErr(err) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Storage(err)
	}
	comments, err := s.comments.ListByPost(postID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return comments, nil
}
