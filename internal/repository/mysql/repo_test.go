package mysql

import (
	"fmt"
	"sync/atomic"
	"testing"

	"inkwell/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// openTestDB gives each test its own in-memory database with foreign keys
// enforced, so the cascade and SET NULL behavior is exercised for real.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Subscription{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, (&UserRepository{DB: db}).Create(u))
	return u
}

func createGroup(t *testing.T, db *gorm.DB, title, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: title, Slug: slug, Description: "about " + title}
	require.NoError(t, (&GroupRepository{DB: db}).Create(g))
	return g
}

func createPost(t *testing.T, db *gorm.DB, authorID uint64, groupID *uint64, text string) *model.Post {
	t.Helper()
	p := &model.Post{Text: text, AuthorID: authorID, GroupID: groupID}
	require.NoError(t, (&PostRepository{DB: db}).Create(p))
	return p
}
