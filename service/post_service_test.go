package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"cms/internal/apperr"
	"cms/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func statusPtr(s model.PostStatus) *model.PostStatus { return &s }

func TestCreatePostOwnership(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice", model.RoleAuthor)

	post, err := env.posts.Create(author, CreatePostInput{
		Title:   "Hello World",
		Content: "body",
	})
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, "hello-world", post.Slug, "slug derived from title")
	assert.Equal(t, model.PostDraft, post.Status, "status defaults to draft")
	assert.Nil(t, post.PublishedAt)
}

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice", model.RoleAuthor)

	_, err := env.posts.Create(author, CreatePostInput{Title: "", Content: "body"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = env.posts.Create(author, CreatePostInput{Title: "t", Content: "c", Status: "bogus"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = env.posts.Create(author, CreatePostInput{Title: "t", Content: "c", TagIDs: []uint64{999}})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice", model.RoleAuthor)

	first, err := env.posts.Create(author, CreatePostInput{Title: "One", Slug: "same", Content: "a"})
	require.NoError(t, err)

	_, err = env.posts.Create(author, CreatePostInput{Title: "Two", Slug: "same", Content: "b"})
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))

	// 第一篇不受影响
	got, err := env.posts.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "One", got.Title)
}

func TestSlugUniquenessExcludesSelf(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice", model.RoleAuthor)

	post, err := env.posts.Create(author, CreatePostInput{Title: "One", Slug: "mine", Content: "a"})
	require.NoError(t, err)

	// 用自己的 slug 更新自己不算冲突
	_, err = env.posts.Update(author, post.ID, UpdatePostInput{Slug: strPtr("mine"), Title: strPtr("Renamed")})
	assert.NoError(t, err)
}

func TestPublishStampsPublishedAtExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice", model.RoleAuthor)

	post, err := env.posts.Create(author, CreatePostInput{Title: "Draft", Content: "c"})
	require.NoError(t, err)
	require.Nil(t, post.PublishedAt)

	post, err = env.posts.Update(author, post.ID, UpdatePostInput{Status: statusPtr(model.PostPublished)})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	t1 := *post.PublishedAt

	// 无关字段编辑不影响 published_at
	post, err = env.posts.Update(author, post.ID, UpdatePostInput{Title: strPtr("Edited")})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	assert.True(t, post.PublishedAt.Equal(t1))

	// 归档后再发布也不重置
	post, err = env.posts.Update(author, post.ID, UpdatePostInput{Status: statusPtr(model.PostArchived)})
	require.NoError(t, err)
	post, err = env.posts.Update(author, post.ID, UpdatePostInput{Status: statusPtr(model.PostPublished)})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	assert.True(t, post.PublishedAt.Equal(t1), "published_at must never change after first publish")
}

func TestUpdateForbiddenLeavesPostUnchanged(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)
	bob := env.createUser(t, "bob", model.RoleAuthor)
	editor := env.createUser(t, "eddy", model.RoleEditor)

	post, err := env.posts.Create(alice, CreatePostInput{Title: "Mine", Content: "c"})
	require.NoError(t, err)

	_, err = env.posts.Update(bob, post.ID, UpdatePostInput{Title: strPtr("Stolen")})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	// 编辑角色对他人文章同样没有特权
	_, err = env.posts.Update(editor, post.ID, UpdatePostInput{Title: strPtr("Stolen")})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	err = env.posts.Delete(bob, post.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	got, err := env.posts.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)
}

func TestDeleteCascadesToComments(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)
	bob := env.createUser(t, "bob", model.RoleAuthor)

	post, err := env.posts.Create(alice, CreatePostInput{Title: "Commented", Content: "c"})
	require.NoError(t, err)

	const n = 5
	for i := 0; i < n; i++ {
		_, err := env.comments.Submit(bob, post.ID, fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, env.db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	require.EqualValues(t, n, count)

	require.NoError(t, env.posts.Delete(alice, post.ID))

	require.NoError(t, env.db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count, "all comments must be removed with the post")

	_, err = env.posts.Get(post.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestViewIncrementsByExactlyOne(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)

	post, err := env.posts.Create(alice, CreatePostInput{Title: "Viewed", Content: "c"})
	require.NoError(t, err)

	const k = 7
	for i := 0; i < k; i++ {
		_, err := env.posts.View(post.ID)
		require.NoError(t, err)
	}
	got, err := env.posts.Get(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, k, got.Views)

	_, err = env.posts.View(99999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestConcurrentViewsLoseNoUpdates(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)

	post, err := env.posts.Create(alice, CreatePostInput{Title: "Hot", Content: "c"})
	require.NoError(t, err)

	const k = 16
	var wg sync.WaitGroup
	errs := make(chan error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.posts.View(post.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := env.posts.Get(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, k, got.Views)
}

func TestListPublishedOrdering(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)

	base := time.Now().Add(-time.Hour)
	var ids []uint64
	for i := 0; i < 3; i++ {
		post, err := env.posts.Create(alice, CreatePostInput{
			Title:   fmt.Sprintf("Post %d", i),
			Content: "c",
			Status:  model.PostPublished,
		})
		require.NoError(t, err)
		// 控制发布时间以验证排序
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, env.db.Model(&model.Post{}).Where("id = ?", post.ID).
			UpdateColumn("published_at", ts).Error)
		ids = append(ids, post.ID)
	}
	// 一篇草稿不应出现
	_, err := env.posts.Create(alice, CreatePostInput{Title: "Hidden", Content: "c"})
	require.NoError(t, err)

	posts, err := env.posts.ListPublished(10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, ids[2], posts[0].ID, "newest publish first")
	assert.Equal(t, ids[1], posts[1].ID)
	assert.Equal(t, ids[0], posts[2].ID)

	// limit/offset 可重入
	page, err := env.posts.ListPublished(1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)
}

func TestCategoryAndTagsOnPosts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleAuthor)

	cat, err := env.taxonomy.CreateCategory("News", "", "")
	require.NoError(t, err)
	tagA, err := env.taxonomy.CreateTag("Go", "")
	require.NoError(t, err)
	tagB, err := env.taxonomy.CreateTag("Web", "")
	require.NoError(t, err)

	post, err := env.posts.Create(alice, CreatePostInput{
		Title:      "Tagged",
		Content:    "c",
		CategoryID: &cat.ID,
		TagIDs:     []uint64{tagA.ID, tagB.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, post.CategoryID)
	assert.Equal(t, cat.ID, *post.CategoryID)
	assert.Len(t, post.Tags, 2)

	// 替换标签集合
	post, err = env.posts.Update(alice, post.ID, UpdatePostInput{TagIDs: []uint64{tagB.ID}})
	require.NoError(t, err)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, tagB.ID, post.Tags[0].ID)

	// category_id = 0 清除分类
	var zero uint64
	post, err = env.posts.Update(alice, post.ID, UpdatePostInput{CategoryID: &zero})
	require.NoError(t, err)
	assert.Nil(t, post.CategoryID)

	_, err = env.posts.Create(alice, CreatePostInput{Title: "Bad cat", Content: "c", CategoryID: func() *uint64 { v := uint64(999); return &v }()})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

// TestAdminScenario runs the end-to-end example: author A creates a draft,
// author B is rejected, admin edits and publishes, repeat publish is a no-op
// for published_at.
func TestAdminScenario(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "root", model.RoleAdmin)
	authorA := env.createUser(t, "author-a", model.RoleAuthor)
	authorB := env.createUser(t, "author-b", model.RoleAuthor)

	news, err := env.taxonomy.CreateCategory("News", "news", "")
	require.NoError(t, err)

	post, err := env.posts.Create(authorA, CreatePostInput{
		Title:      "Hello",
		Slug:       "hello",
		Content:    "body",
		CategoryID: &news.ID,
	})
	require.NoError(t, err)
	require.Equal(t, authorA.ID, post.AuthorID)

	_, err = env.posts.Update(authorB, post.ID, UpdatePostInput{Title: strPtr("Hijack")})
	require.True(t, apperr.Is(err, apperr.KindForbidden))

	beforeUpdate := post.UpdatedAt
	time.Sleep(10 * time.Millisecond)
	post, err = env.posts.Update(admin, post.ID, UpdatePostInput{Title: strPtr("Hello, edited")})
	require.NoError(t, err)
	assert.True(t, post.UpdatedAt.After(beforeUpdate))
	assert.Nil(t, post.PublishedAt)

	post, err = env.posts.Update(admin, post.ID, UpdatePostInput{Status: statusPtr(model.PostPublished)})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	t1 := *post.PublishedAt

	post, err = env.posts.Update(admin, post.ID, UpdatePostInput{Status: statusPtr(model.PostPublished)})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	assert.True(t, post.PublishedAt.Equal(t1))
}
