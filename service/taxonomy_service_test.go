package service

import (
	"testing"

	"cms/internal/apperr"
	"cms/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryDerivesSlug(t *testing.T) {
	env := newTestEnv(t)

	cat, err := env.taxonomy.CreateCategory("Tech News", "", "all things tech")
	require.NoError(t, err)
	assert.Equal(t, "tech-news", cat.Slug)

	// 显式 slug 优先
	cat2, err := env.taxonomy.CreateCategory("Other", "custom-slug", "")
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", cat2.Slug)
}

func TestCreateCategoryDuplicates(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.taxonomy.CreateCategory("News", "news", "")
	require.NoError(t, err)

	_, err = env.taxonomy.CreateCategory("News", "different", "")
	assert.True(t, apperr.Is(err, apperr.KindDuplicate), "duplicate name")

	_, err = env.taxonomy.CreateCategory("Different", "news", "")
	assert.True(t, apperr.Is(err, apperr.KindDuplicate), "duplicate slug")

	// 推导出的 slug 冲突也必须失败，而不是悄悄改名
	_, err = env.taxonomy.CreateCategory("NEWS", "", "")
	assert.True(t, apperr.Is(err, apperr.KindDuplicate), "derived slug collision")

	_, err = env.taxonomy.CreateCategory("", "", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreateTagDuplicates(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.taxonomy.CreateTag("Go", "")
	require.NoError(t, err)
	_, err = env.taxonomy.CreateTag("Go", "")
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))

	tags, err := env.taxonomy.ListTags()
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestDeleteCategoryRejectedWhilePostsRemain(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)

	cat, err := env.taxonomy.CreateCategory("News", "", "")
	require.NoError(t, err)
	post, err := env.posts.Create(alice, CreatePostInput{Title: "In category", Content: "c", CategoryID: &cat.ID})
	require.NoError(t, err)

	err = env.taxonomy.DeleteCategory(cat.ID)
	assert.True(t, apperr.Is(err, apperr.KindConflict), "delete must be rejected, not cascaded")

	// 文章移走后即可删除
	require.NoError(t, env.posts.Delete(alice, post.ID))
	assert.NoError(t, env.taxonomy.DeleteCategory(cat.ID))

	err = env.taxonomy.DeleteCategory(cat.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDeleteTagDetaches(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)

	tag, err := env.taxonomy.CreateTag("Go", "")
	require.NoError(t, err)
	post, err := env.posts.Create(alice, CreatePostInput{Title: "Tagged", Content: "c", TagIDs: []uint64{tag.ID}})
	require.NoError(t, err)

	require.NoError(t, env.taxonomy.DeleteTag(tag.ID))

	got, err := env.posts.Get(post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags, "association rows removed with the tag")

	err = env.taxonomy.DeleteTag(tag.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
