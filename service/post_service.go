package service

import (
	"time"

	"cms/dao"
	"cms/internal/apperr"
	"cms/internal/metrics"
	"cms/model"
	"cms/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PostService implements the content engine: the post lifecycle state
// machine, the ownership/permission contract and slug uniqueness.
type PostService struct {
	posts    *dao.PostDAO
	taxonomy *dao.TaxonomyDAO
}

// NewPostService 创建一个新的 PostService 实例
func NewPostService(posts *dao.PostDAO, taxonomy *dao.TaxonomyDAO) *PostService {
	return &PostService{posts: posts, taxonomy: taxonomy}
}

// canMutate is the single permission rule for edit/delete/status changes:
// the author themselves, or an admin. Editors deliberately get no extra
// rights over other people's posts.
func canMutate(actor *model.User, post *model.Post) bool {
	return actor.ID == post.AuthorID || actor.Role == model.RoleAdmin
}

// CreatePostInput 创建文章的输入
type CreatePostInput struct {
	Title      string
	Slug       string // 为空时由标题推导
	Content    string
	Excerpt    string
	CategoryID *uint64
	Status     model.PostStatus // 为空时默认 draft
	TagIDs     []uint64
}

// UpdatePostInput carries a partial update; nil pointers leave the field
// untouched. A CategoryID pointing at 0 clears the category. TagIDs nil
// leaves the tag set alone, an empty non-nil slice clears it.
type UpdatePostInput struct {
	Title         *string
	Slug          *string
	Content       *string
	Excerpt       *string
	FeaturedImage *string
	CategoryID    *uint64
	Status        *model.PostStatus
	TagIDs        []uint64
}

// Create inserts a new post owned by the actor. AuthorID always comes from
// the actor, never from the payload.
func (s *PostService) Create(actor *model.User, in CreatePostInput) (*model.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, apperr.New(apperr.KindValidation, "title and content are required")
	}
	status := in.Status
	if status == "" {
		status = model.PostDraft
	}
	if !status.Valid() {
		return nil, apperr.Newf(apperr.KindValidation, "unknown status %q", in.Status)
	}

	slug := in.Slug
	if slug == "" {
		slug = utils.Slugify(in.Title)
	}
	if slug == "" {
		return nil, apperr.New(apperr.KindValidation, "slug could not be derived from title")
	}
	taken, err := s.posts.SlugTaken(slug, 0)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if taken {
		return nil, apperr.Newf(apperr.KindDuplicate, "slug %q already exists", slug)
	}

	if in.CategoryID != nil {
		if _, err := s.taxonomy.GetCategoryByID(*in.CategoryID); err != nil {
			if isNotFoundErr(err) {
				return nil, apperr.New(apperr.KindNotFound, "category not found")
			}
			return nil, apperr.Storage(err)
		}
	}
	tags, err := s.resolveTags(in.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:      in.Title,
		Slug:       slug,
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		Status:     status,
		AuthorID:   actor.ID, // 所有权不可伪造
		CategoryID: in.CategoryID,
	}
	if status == model.PostPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.posts.CreatePost(post, tags); err != nil {
		if isDuplicateErr(err) { // 并发创建兜底
			return nil, apperr.Newf(apperr.KindDuplicate, "slug %q already exists", slug)
		}
		metrics.IncPostMutation("create", "error")
		return nil, apperr.Storage(err)
	}
	post.Tags = tags
	metrics.IncPostMutation("create", "ok")
	if post.Status == model.PostPublished {
		metrics.IncPublish()
	}
	return post, nil
}

// Update applies a partial update under the permission contract. Status
// changes follow the lifecycle state machine: the first transition into
// published stamps PublishedAt, and nothing ever clears it afterwards.
// Concurrent writers are last-writer-wins.
func (s *PostService) Update(actor *model.User, postID uint64, in UpdatePostInput) (*model.Post, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}
	if !canMutate(actor, post) {
		return nil, apperr.New(apperr.KindForbidden, "not the author")
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperr.New(apperr.KindValidation, "title cannot be empty")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, apperr.New(apperr.KindValidation, "content cannot be empty")
		}
		post.Content = *in.Content
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.FeaturedImage != nil {
		post.FeaturedImage = *in.FeaturedImage
	}
	if in.Slug != nil {
		if *in.Slug == "" {
			return nil, apperr.New(apperr.KindValidation, "slug cannot be empty")
		}
		taken, err := s.posts.SlugTaken(*in.Slug, post.ID) // 排除自身
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if taken {
			return nil, apperr.Newf(apperr.KindDuplicate, "slug %q already exists", *in.Slug)
		}
		post.Slug = *in.Slug
	}
	if in.CategoryID != nil {
		if *in.CategoryID == 0 {
			post.CategoryID = nil
		} else {
			if _, err := s.taxonomy.GetCategoryByID(*in.CategoryID); err != nil {
				if isNotFoundErr(err) {
					return nil, apperr.New(apperr.KindNotFound, "category not found")
				}
				return nil, apperr.Storage(err)
			}
			post.CategoryID = in.CategoryID
		}
	}

	published := false
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Newf(apperr.KindValidation, "unknown status %q", *in.Status)
		}
		if *in.Status == model.PostPublished && post.Status != model.PostPublished {
			published = true
		}
		post.Status = *in.Status
		// PublishedAt 只在第一次发布时写入，之后任何状态流转都不再改动
		if post.Status == model.PostPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	var tags []model.Tag
	if in.TagIDs != nil {
		tags, err = s.resolveTags(in.TagIDs)
		if err != nil {
			return nil, err
		}
		if tags == nil {
			tags = []model.Tag{}
		}
	}

	post.UpdatedAt = time.Now()
	if err := s.posts.SavePost(post, tags); err != nil {
		if isDuplicateErr(err) {
			return nil, apperr.New(apperr.KindDuplicate, "slug already exists")
		}
		metrics.IncPostMutation("update", "error")
		return nil, apperr.Storage(err)
	}
	if in.TagIDs != nil {
		post.Tags = tags
	}
	metrics.IncPostMutation("update", "ok")
	if published {
		metrics.IncPublish()
	}
	return post, nil
}

// Delete removes the post and everything it owns (comments, tag links).
func (s *PostService) Delete(actor *model.User, postID uint64) error {
	post, err := s.getPost(postID)
	if err != nil {
		return err
	}
	if !canMutate(actor, post) {
		return apperr.New(apperr.KindForbidden, "not the author")
	}
	if err := s.posts.DeleteCascade(post); err != nil {
		metrics.IncPostMutation("delete", "error")
		return apperr.Storage(err)
	}
	metrics.IncPostMutation("delete", "ok")
	return nil
}

// View increments the view counter by exactly one and returns the post.
// The increment is a single SQL expression, so concurrent views never lose
// updates. Visibility is not filtered here; public listings do their own
// filtering.
func (s *PostService) View(postID uint64) (*model.Post, error) {
	if err := s.posts.IncrementViews(postID); err != nil {
		if isNotFoundErr(err) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Storage(err)
	}
	return s.getPost(postID)
}

// Get returns the post without touching the view counter.
func (s *PostService) Get(postID uint64) (*model.Post, error) {
	return s.getPost(postID)
}

// ListPublished returns published posts ordered by publish time descending.
func (s *PostService) ListPublished(limit, offset int) ([]model.Post, error) {
	posts, err := s.posts.ListPublished(clampLimit(limit), max(offset, 0))
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return posts, nil
}

// ListAll returns every post for the authenticated dashboard, newest first.
func (s *PostService) ListAll(limit, offset int) ([]model.Post, error) {
	posts, err := s.posts.ListAll(clampLimit(limit), max(offset, 0))
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return posts, nil
}

func (s *PostService) getPost(id uint64) (*model.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Storage(err)
	}
	return post, nil
}

func (s *PostService) resolveTags(ids []uint64) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	seen := make(map[uint64]struct{}, len(ids))
	unique := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	tags, err := s.taxonomy.GetTagsByIDs(unique)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if len(tags) != len(unique) {
		return nil, apperr.New(apperr.KindNotFound, "one or more tags not found")
	}
	return tags, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
