package service_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"inkwell/internal/model"
	"inkwell/internal/pkg"
	"inkwell/internal/repository/mysql"
	"inkwell/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

type fixture struct {
	db    *gorm.DB
	posts *mysql.PostRepository
	users *mysql.UserRepository
	subs  *mysql.SubscriptionRepository
	svc   *service.PostService
}

func newFixture(t *testing.T, pageSize, titleChars int) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
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

	f := &fixture{
		db:    db,
		posts: &mysql.PostRepository{DB: db},
		users: &mysql.UserRepository{DB: db},
		subs:  &mysql.SubscriptionRepository{DB: db},
	}
	f.svc = service.NewPostService(f.posts, &mysql.GroupRepository{DB: db}, f.users, f.subs,
		nil, zap.NewNop(), pageSize, titleChars)
	return f
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, f.users.Create(u))
	return u
}

func (f *fixture) group(t *testing.T, title, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: title, Slug: slug, Description: "about " + title}
	require.NoError(t, (&mysql.GroupRepository{DB: f.db}).Create(g))
	return g
}

func (f *fixture) post(t *testing.T, authorID uint64, groupID *uint64, text string) *model.Post {
	t.Helper()
	p := &model.Post{Text: text, AuthorID: authorID, GroupID: groupID}
	require.NoError(t, f.posts.Create(p))
	return p
}

// The concrete end-to-end scenario: page size 10, 11 posts by one author in
// one group.
func TestPostService_ElevenPostScenario(t *testing.T) {
	f := newFixture(t, 10, 30)
	author := f.user(t, "alice")
	group := f.group(t, "Travel", "travel")

	var created []*model.Post
	for i := 1; i <= 11; i++ {
		created = append(created, f.post(t, author.ID, &group.ID, fmt.Sprintf("post number %d", i)))
	}
	newest := created[len(created)-1]

	page1, err := f.svc.ListIndex(1)
	require.NoError(t, err)
	assert.Len(t, page1.Posts, 10)
	assert.Equal(t, newest.ID, page1.Posts[0].ID, "most recent first")
	assert.Equal(t, 2, page1.Pagination.TotalPages)
	assert.True(t, page1.Pagination.HasNext)
	assert.False(t, page1.Pagination.HasPrev)

	page2, err := f.svc.ListIndex(2)
	require.NoError(t, err)
	require.Len(t, page2.Posts, 1)
	assert.Equal(t, created[0].ID, page2.Posts[0].ID, "the oldest post lands on page 2")

	groupPage, err := f.svc.ListGroup("travel", 1)
	require.NoError(t, err)
	assert.Len(t, groupPage.Posts, 10)
	assert.Equal(t, group.ID, groupPage.Group.ID)
	for i, p := range groupPage.Posts {
		assert.Equal(t, page1.Posts[i].ID, p.ID, "group page equals index page when all posts share the group")
	}

	// Edit the newest post as its author, then re-read it.
	edited, err := f.svc.Edit(author.ID, newest.ID, service.PostInput{Text: "updated", GroupID: &group.ID})
	require.NoError(t, err)
	assert.Equal(t, "updated", edited.Text)

	detail, err := f.svc.GetDetail(author.ID, newest.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", detail.Post.Text)
	assert.True(t, newest.PubDate.Equal(detail.Post.PubDate), "pub_date survives the edit")
	assert.True(t, detail.IsAuthor)
	assert.Equal(t, int64(11), detail.AuthorPostCount)
}

func TestPostService_ListIndexEmpty(t *testing.T) {
	f := newFixture(t, 10, 30)

	feed, err := f.svc.ListIndex(1)
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
	assert.Equal(t, 1, feed.Pagination.TotalPages)
	assert.Equal(t, int64(0), feed.Pagination.TotalItems)
}

func TestPostService_PageBeyondEndIsEmptyNotError(t *testing.T) {
	f := newFixture(t, 10, 30)
	author := f.user(t, "alice")
	f.post(t, author.ID, nil, "only one")

	feed, err := f.svc.ListIndex(5)
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
	assert.Equal(t, 5, feed.Pagination.Page)
	assert.Equal(t, 1, feed.Pagination.TotalPages)
}

func TestPostService_ListGroupUnknownSlug(t *testing.T) {
	f := newFixture(t, 10, 30)
	_, err := f.svc.ListGroup("missing", 1)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestPostService_ListProfile(t *testing.T) {
	f := newFixture(t, 10, 30)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	for i := 0; i < 3; i++ {
		f.post(t, alice.ID, nil, fmt.Sprintf("alice %d", i))
	}
	f.post(t, bob.ID, nil, "bob 0")

	profile, err := f.svc.ListProfile("alice", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), profile.PostCount)
	assert.Len(t, profile.Posts, 3)
	assert.Equal(t, "alice", profile.Author.Username)

	_, err = f.svc.ListProfile("nobody", 1)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestPostService_CreateRejectsEmptyText(t *testing.T) {
	f := newFixture(t, 10, 30)
	author := f.user(t, "alice")

	_, err := f.svc.Create(author.ID, service.PostInput{Text: "  \n "})
	var verrs pkg.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	feed, err := f.svc.ListIndex(1)
	require.NoError(t, err)
	assert.Empty(t, feed.Posts, "a rejected submission never shows up in listings")
}

func TestPostService_CreateStampsAuthor(t *testing.T) {
	f := newFixture(t, 10, 30)
	author := f.user(t, "alice")

	post, err := f.svc.Create(author.ID, service.PostInput{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.AuthorID)
	require.NotNil(t, post.Author)
	assert.Equal(t, "alice", post.Author.Username)
	assert.False(t, post.PubDate.IsZero())
}

func TestPostService_EditByNonAuthorChangesNothing(t *testing.T) {
	f := newFixture(t, 10, 30)
	alice := f.user(t, "alice")
	mallory := f.user(t, "mallory")
	post := f.post(t, alice.ID, nil, "untouchable")

	_, err := f.svc.Edit(mallory.ID, post.ID, service.PostInput{Text: "hijacked"})
	assert.ErrorIs(t, err, pkg.ErrNotAuthor)

	got, err := f.svc.GetDetail(0, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "untouchable", got.Post.Text)
	assert.Equal(t, alice.ID, got.Post.AuthorID)
}

func TestPostService_EditMissingPost(t *testing.T) {
	f := newFixture(t, 10, 30)
	alice := f.user(t, "alice")

	_, err := f.svc.Edit(alice.ID, 999, service.PostInput{Text: "whatever"})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestPostService_DetailIdempotent(t *testing.T) {
	f := newFixture(t, 10, 30)
	alice := f.user(t, "alice")
	post := f.post(t, alice.ID, nil, "stable")

	first, err := f.svc.GetDetail(0, post.ID)
	require.NoError(t, err)
	second, err := f.svc.GetDetail(0, post.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Post.Text, second.Post.Text)
	assert.True(t, first.Post.PubDate.Equal(second.Post.PubDate))
	assert.Equal(t, first.TitlePreview, second.TitlePreview)
}

func TestPostService_DetailTitlePreview(t *testing.T) {
	f := newFixture(t, 10, 12)
	alice := f.user(t, "alice")
	post := f.post(t, alice.ID, nil, "a rather long piece of text")

	detail, err := f.svc.GetDetail(0, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "a rather lo…", detail.TitlePreview)
	assert.False(t, detail.IsAuthor, "anonymous viewer is never the author")
}

func TestPostService_ListFollowed(t *testing.T) {
	f := newFixture(t, 10, 30)
	reader := f.user(t, "reader")
	followed := f.user(t, "followed")
	ignored := f.user(t, "ignored")

	f.post(t, followed.ID, nil, "from followed")
	f.post(t, ignored.ID, nil, "from ignored")

	_, err := f.subs.Subscribe(reader.ID, followed.ID)
	require.NoError(t, err)

	feed, err := f.svc.ListFollowed(reader.ID, 1)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, followed.ID, feed.Posts[0].AuthorID)

	// No subscriptions means an empty first page, not an error.
	empty, err := f.svc.ListFollowed(ignored.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, empty.Posts)
	assert.Equal(t, 1, empty.Pagination.TotalPages)
}
