package service

import (
	"fmt"
	"testing"

	"cms/dao"
	"cms/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database per test. The shared
// cache keeps the database alive across the pooled connections, and the busy
// timeout lets concurrent writers queue instead of failing.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.Post{},
		&model.Comment{},
		&model.Media{},
	))
	return db
}

type testEnv struct {
	db       *gorm.DB
	users    *UserService
	posts    *PostService
	taxonomy *TaxonomyService
	comments *CommentService
	media    *MediaService
	stats    *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	userDAO := dao.NewUserDAO(db)
	postDAO := dao.NewPostDAO(db)
	taxonomyDAO := dao.NewTaxonomyDAO(db)
	commentDAO := dao.NewCommentDAO(db)
	mediaDAO := dao.NewMediaDAO(db)
	return &testEnv{
		db:       db,
		users:    NewUserService(userDAO, nil),
		posts:    NewPostService(postDAO, taxonomyDAO),
		taxonomy: NewTaxonomyService(taxonomyDAO, postDAO),
		comments: NewCommentService(commentDAO, postDAO),
		media:    NewMediaService(mediaDAO),
		stats:    NewStatsService(postDAO, userDAO, taxonomyDAO, commentDAO),
	}
}

// createUser registers a user with the given role for use as an actor.
func (e *testEnv) createUser(t *testing.T, username string, role model.Role) *model.User {
	t.Helper()
	user, err := e.users.Register(RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "Passw0rd!",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}
