package service

import (
	"cms/dao"
	"cms/internal/apperr"
	"cms/model"
)

// Stats 仪表盘统计数据
type Stats struct {
	TotalPosts      int64 `json:"total_posts"`
	PublishedPosts  int64 `json:"published_posts"`
	DraftPosts      int64 `json:"draft_posts"`
	TotalUsers      int64 `json:"total_users"`
	TotalCategories int64 `json:"total_categories"`
	PendingComments int64 `json:"pending_comments"`
}

// StatsService aggregates the dashboard counters.
type StatsService struct {
	posts    *dao.PostDAO
	users    *dao.UserDAO
	taxonomy *dao.TaxonomyDAO
	comments *dao.CommentDAO
}

// NewStatsService 创建一个新的 StatsService 实例
func NewStatsService(posts *dao.PostDAO, users *dao.UserDAO, taxonomy *dao.TaxonomyDAO, comments *dao.CommentDAO) *StatsService {
	return &StatsService{posts: posts, users: users, taxonomy: taxonomy, comments: comments}
}

// Collect gathers the dashboard statistics in one pass.
func (s *StatsService) Collect() (*Stats, error) {
	var (
		stats Stats
		err   error
	)
	if stats.TotalPosts, err = s.posts.Count(); err != nil {
		return nil, apperr.Storage(err)
	}
	if stats.PublishedPosts, err = s.posts.CountByStatus(model.PostPublished); err != nil {
		return nil, apperr.Storage(err)
	}
	if stats.DraftPosts, err = s.posts.CountByStatus(model.PostDraft); err != nil {
		return nil, apperr.Storage(err)
	}
	if stats.TotalUsers, err = s.users.Count(); err != nil {
		return nil, apperr.Storage(err)
	}
	if stats.TotalCategories, err = s.taxonomy.CountCategories(); err != nil {
		return nil, apperr.Storage(err)
	}
	if stats.PendingComments, err = s.comments.CountByStatus(model.CommentPending); err != nil {
		return nil, apperr.Storage(err)
	}
	return &stats, nil
}
