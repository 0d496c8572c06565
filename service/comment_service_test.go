package service

import (
	"testing"

	"cms/internal/apperr"
	"cms/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCommentStartsPending(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)
	admin := env.createUser(t, "root", model.RoleAdmin)

	post, err := env.posts.Create(alice, CreatePostInput{Title: "Post", Content: "c"})
	require.NoError(t, err)

	comment, err := env.comments.Submit(alice, post.ID, "first!")
	require.NoError(t, err)
	assert.Equal(t, model.CommentPending, comment.Status)
	assert.Equal(t, alice.ID, comment.AuthorID)

	// 管理员的评论同样从 pending 开始
	comment, err = env.comments.Submit(admin, post.ID, "admin speaking")
	require.NoError(t, err)
	assert.Equal(t, model.CommentPending, comment.Status)

	_, err = env.comments.Submit(alice, 99999, "ghost post")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = env.comments.Submit(alice, post.ID, "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestModeratePermissions(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)
	editor := env.createUser(t, "eddy", model.RoleEditor)
	admin := env.createUser(t, "root", model.RoleAdmin)

	post, err := env.posts.Create(alice, CreatePostInput{Title: "Post", Content: "c"})
	require.NoError(t, err)
	comment, err := env.comments.Submit(alice, post.ID, "hmm")
	require.NoError(t, err)

	// 作者（即使是评论作者本人）不能审核
	_, err = env.comments.Moderate(alice, comment.ID, model.CommentApproved)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	moderated, err := env.comments.Moderate(editor, comment.ID, model.CommentApproved)
	require.NoError(t, err)
	assert.Equal(t, model.CommentApproved, moderated.Status)

	// 任意状态间流转均允许，包括幂等设置
	moderated, err = env.comments.Moderate(admin, comment.ID, model.CommentSpam)
	require.NoError(t, err)
	assert.Equal(t, model.CommentSpam, moderated.Status)
	moderated, err = env.comments.Moderate(admin, comment.ID, model.CommentSpam)
	require.NoError(t, err)
	assert.Equal(t, model.CommentSpam, moderated.Status)
	moderated, err = env.comments.Moderate(admin, comment.ID, model.CommentPending)
	require.NoError(t, err)
	assert.Equal(t, model.CommentPending, moderated.Status)

	_, err = env.comments.Moderate(admin, comment.ID, "deleted")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = env.comments.Moderate(admin, 99999, model.CommentSpam)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestListForPost(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)

	post, err := env.posts.Create(alice, CreatePostInput{Title: "Post", Content: "c"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := env.comments.Submit(alice, post.ID, "c")
		require.NoError(t, err)
	}

	comments, err := env.comments.ListForPost(post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 3)

	_, err = env.comments.ListForPost(99999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
