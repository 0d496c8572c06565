package service

import (
	"testing"

	"cms/internal/apperr"
	"cms/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyFileType(t *testing.T) {
	cases := []struct {
		mime string
		want model.FileType
	}{
		{"image/png", model.FileImage},
		{"image/jpeg", model.FileImage},
		{"video/mp4", model.FileVideo},
		{"application/pdf", model.FileDocument},
		{"text/plain", model.FileDocument},
		{"", model.FileDocument},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyFileType(c.mime), "mime %q", c.mime)
	}
}

func TestRegisterMedia(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)

	media, err := env.media.Register(alice, RegisterMediaInput{
		Filename:         "abc123.png",
		OriginalFilename: "holiday.png",
		FilePath:         "static/uploads/abc123.png",
		FileSize:         2048,
		MimeType:         "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, model.FileImage, media.FileType, "classification comes from MIME, not the caller")
	assert.Equal(t, alice.ID, media.UploadedBy)

	_, err = env.media.Register(alice, RegisterMediaInput{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestDeleteMediaPermissions(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)
	bob := env.createUser(t, "bob", model.RoleAuthor)
	admin := env.createUser(t, "root", model.RoleAdmin)

	upload := func() *model.Media {
		media, err := env.media.Register(alice, RegisterMediaInput{
			Filename:         "f.bin",
			OriginalFilename: "f.bin",
			FilePath:         "static/uploads/f.bin",
			MimeType:         "application/octet-stream",
		})
		require.NoError(t, err)
		return media
	}

	// 非上传者且非管理员：拒绝
	media := upload()
	_, err := env.media.Delete(bob, media.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	// 上传者本人：允许
	_, err = env.media.Delete(alice, media.ID)
	assert.NoError(t, err)

	// 管理员：允许
	media = upload()
	_, err = env.media.Delete(admin, media.ID)
	assert.NoError(t, err)

	_, err = env.media.Delete(admin, 99999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

// 删除媒体不会修复文章里的引用，悬挂引用是接受的限制
func TestDeleteMediaLeavesPostReferences(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)

	media, err := env.media.Register(alice, RegisterMediaInput{
		Filename:         "cover.png",
		OriginalFilename: "cover.png",
		FilePath:         "static/uploads/cover.png",
		MimeType:         "image/png",
	})
	require.NoError(t, err)

	post, err := env.posts.Create(alice, CreatePostInput{Title: "With cover", Content: "c"})
	require.NoError(t, err)
	post, err = env.posts.Update(alice, post.ID, UpdatePostInput{FeaturedImage: strPtr(media.FilePath)})
	require.NoError(t, err)

	_, err = env.media.Delete(alice, media.ID)
	require.NoError(t, err)

	got, err := env.posts.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, media.FilePath, got.FeaturedImage)
}
