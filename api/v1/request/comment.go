package request

import "cms/model"

type SubmitCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type ModerateCommentRequest struct {
	Status model.CommentStatus `json:"status" binding:"required"`
}
