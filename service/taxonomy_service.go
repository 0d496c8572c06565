package service

import (
	"cms/dao"
	"cms/internal/apperr"
	"cms/model"
	"cms/utils"
)

// TaxonomyService manages the flat category and tag vocabularies.
type TaxonomyService struct {
	taxonomy *dao.TaxonomyDAO
	posts    *dao.PostDAO
}

// NewTaxonomyService 创建一个新的 TaxonomyService 实例
func NewTaxonomyService(taxonomy *dao.TaxonomyDAO, posts *dao.PostDAO) *TaxonomyService {
	return &TaxonomyService{taxonomy: taxonomy, posts: posts}
}

// CreateCategory creates a category, deriving the slug from the name when
// omitted. A derived slug that collides fails loudly instead of silently
// renaming.
func (s *TaxonomyService) CreateCategory(name, slug, description string) (*model.Category, error) {
	if name == "" {
		return nil, apperr.New(apperr.KindValidation, "name is required")
	}
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return nil, apperr.New(apperr.KindValidation, "slug could not be derived from name")
	}

	if taken, err := s.taxonomy.CategoryNameTaken(name); err != nil {
		return nil, apperr.Storage(err)
	} else if taken {
		return nil, apperr.Newf(apperr.KindDuplicate, "category name %q already exists", name)
	}
	if taken, err := s.taxonomy.CategorySlugTaken(slug); err != nil {
		return nil, apperr.Storage(err)
	} else if taken {
		return nil, apperr.Newf(apperr.KindDuplicate, "category slug %q already exists", slug)
	}

	category := &model.Category{Name: name, Slug: slug, Description: description}
	if err := s.taxonomy.CreateCategory(category); err != nil {
		if isDuplicateErr(err) {
			return nil, apperr.New(apperr.KindDuplicate, "category name or slug already exists")
		}
		return nil, apperr.Storage(err)
	}
	return category, nil
}

// CreateTag mirrors CreateCategory for tags.
func (s *TaxonomyService) CreateTag(name, slug string) (*model.Tag, error) {
	if name == "" {
		return nil, apperr.New(apperr.KindValidation, "name is required")
	}
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return nil, apperr.New(apperr.KindValidation, "slug could not be derived from name")
	}

	if taken, err := s.taxonomy.TagNameTaken(name); err != nil {
		return nil, apperr.Storage(err)
	} else if taken {
		return nil, apperr.Newf(apperr.KindDuplicate, "tag name %q already exists", name)
	}
	if taken, err := s.taxonomy.TagSlugTaken(slug); err != nil {
		return nil, apperr.Storage(err)
	} else if taken {
		return nil, apperr.Newf(apperr.KindDuplicate, "tag slug %q already exists", slug)
	}

	tag := &model.Tag{Name: name, Slug: slug}
	if err := s.taxonomy.CreateTag(tag); err != nil {
		if isDuplicateErr(err) {
			return nil, apperr.New(apperr.KindDuplicate, "tag name or slug already exists")
		}
		return nil, apperr.Storage(err)
	}
	return tag, nil
}

// ListCategories 列出所有分类
func (s *TaxonomyService) ListCategories() ([]model.Category, error) {
	categories, err := s.taxonomy.ListCategories()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return categories, nil
}

// ListTags 列出所有标签
func (s *TaxonomyService) ListTags() ([]model.Tag, error) {
	tags, err := s.taxonomy.ListTags()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return tags, nil
}

// DeleteCategory rejects the delete while posts still reference the
// category; it never cascades or orphans.
func (s *TaxonomyService) DeleteCategory(id uint64) error {
	if _, err := s.taxonomy.GetCategoryByID(id); err != nil {
		if isNotFoundErr(err) {
			return apperr.New(apperr.KindNotFound, "category not found")
		}
		return apperr.Storage(err)
	}
	n, err := s.posts.CountByCategory(id)
	if err != nil {
		return apperr.Storage(err)
	}
	if n > 0 {
		return apperr.Newf(apperr.KindConflict, "category still has %d posts", n)
	}
	if err := s.taxonomy.DeleteCategory(id); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// DeleteTag removes the tag; membership carries no meaning beyond the link,
// so the associations are simply dropped with it.
func (s *TaxonomyService) DeleteTag(id uint64) error {
	tags, err := s.taxonomy.GetTagsByIDs([]uint64{id})
	if err != nil {
		return apperr.Storage(err)
	}
	if len(tags) == 0 {
		return apperr.New(apperr.KindNotFound, "tag not found")
	}
	if err := s.taxonomy.DeleteTag(id); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
