package service

import (
	"context"
	"encoding/json"
	"time"

	"inkwell/internal/model"
	"inkwell/internal/pkg"

	"go.uber.org/zap"
)

// View models, one per listing/detail operation.

type Feed struct {
	Posts      []model.Post   `json:"posts"`
	Pagination pkg.Pagination `json:"pagination"`
}

type GroupFeed struct {
	Group      model.Group    `json:"group"`
	Posts      []model.Post   `json:"posts"`
	Pagination pkg.Pagination `json:"pagination"`
}

type Profile struct {
	Author     model.User     `json:"author"`
	PostCount  int64          `json:"post_count"`
	Posts      []model.Post   `json:"posts"`
	Pagination pkg.Pagination `json:"pagination"`
}

type PostDetail struct {
	Post            model.Post `json:"post"`
	TitlePreview    string     `json:"title_preview"`
	AuthorPostCount int64      `json:"author_post_count"`
	IsAuthor        bool       `json:"is_author"`
}

type GroupList struct {
	Groups     []model.Group  `json:"groups"`
	Pagination pkg.Pagination `json:"pagination"`
}

// PostService is the post lifecycle: listings, detail, create, edit. Handlers
// pass the principal explicitly (user id, 0 = anonymous); the service holds no
// per-request state.
type PostService struct {
	posts      PostRepo
	groups     GroupRepo
	users      UserRepo
	subs       SubscriptionRepo
	form       *PostForm
	events     *pkg.EventProducer
	log        *zap.Logger
	pageSize   int
	titleChars int
}

func NewPostService(posts PostRepo, groups GroupRepo, users UserRepo, subs SubscriptionRepo,
	events *pkg.EventProducer, log *zap.Logger, pageSize, titleChars int) *PostService {
	return &PostService{
		posts:      posts,
		groups:     groups,
		users:      users,
		subs:       subs,
		form:       NewPostForm(groups),
		events:     events,
		log:        log,
		pageSize:   pageSize,
		titleChars: titleChars,
	}
}

// ListIndex is the global feed, newest first.
func (s *PostService) ListIndex(page int) (*Feed, error) {
	total, err := s.posts.CountAll()
	if err != nil {
		return nil, err
	}
	p := pkg.NewPagination(total, page, s.pageSize)
	posts, err := s.posts.ListAll(p.Offset(), p.PageSize)
	if err != nil {
		return nil, err
	}
	return &Feed{Posts: posts, Pagination: p}, nil
}

// ListGroup returns the group record and its page of posts.
// pkg.ErrNotFound when the slug is unknown.
func (s *PostService) ListGroup(slug string, page int) (*GroupFeed, error) {
	group, err := s.groups.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	total, err := s.posts.CountByGroup(group.ID)
	if err != nil {
		return nil, err
	}
	p := pkg.NewPagination(total, page, s.pageSize)
	posts, err := s.posts.ListByGroup(group.ID, p.Offset(), p.PageSize)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: *group, Posts: posts, Pagination: p}, nil
}

// ListProfile returns an author's page of posts plus their total post count.
func (s *PostService) ListProfile(username string, page int) (*Profile, error) {
	author, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	total, err := s.posts.CountByAuthor(author.ID)
	if err != nil {
		return nil, err
	}
	p := pkg.NewPagination(total, page, s.pageSize)
	posts, err := s.posts.ListByAuthor(author.ID, p.Offset(), p.PageSize)
	if err != nil {
		return nil, err
	}
	return &Profile{Author: *author, PostCount: total, Posts: posts, Pagination: p}, nil
}

// ListFollowed is the feed of posts by authors the viewer subscribes to.
func (s *PostService) ListFollowed(viewerID uint64, page int) (*Feed, error) {
	authorIDs, err := s.subs.AuthorIDs(viewerID)
	if err != nil {
		return nil, err
	}
	total, err := s.posts.CountByAuthors(authorIDs)
	if err != nil {
		return nil, err
	}
	p := pkg.NewPagination(total, page, s.pageSize)
	posts, err := s.posts.ListByAuthors(authorIDs, p.Offset(), p.PageSize)
	if err != nil {
		return nil, err
	}
	return &Feed{Posts: posts, Pagination: p}, nil
}

// ListGroups pages through all groups, alphabetically.
func (s *PostService) ListGroups(page int) (*GroupList, error) {
	total, err := s.groups.Count()
	if err != nil {
		return nil, err
	}
	p := pkg.NewPagination(total, page, s.pageSize)
	groups, err := s.groups.List(p.Offset(), p.PageSize)
	if err != nil {
		return nil, err
	}
	return &GroupList{Groups: groups, Pagination: p}, nil
}

// GetDetail fetches one post with its derived display title and the viewer's
// authorship flag. viewerID 0 means anonymous.
func (s *PostService) GetDetail(viewerID, postID uint64) (*PostDetail, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.CountByAuthor(post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		Post:            *post,
		TitlePreview:    pkg.TruncateChars(post.Text, s.titleChars),
		AuthorPostCount: count,
		IsAuthor:        viewerID != 0 && viewerID == post.AuthorID,
	}, nil
}

// Create validates the submission, stamps the author and persists. pub_date
// is set by the store exactly once at insert. Validation failures come back
// as pkg.ValidationErrors and nothing is written.
func (s *PostService) Create(authorID uint64, in PostInput) (*model.Post, error) {
	draft, err := s.form.Validate(in, nil)
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(authorID)
	if err != nil {
		return nil, err
	}

	draft.AuthorID = author.ID
	if err := s.posts.Create(draft); err != nil {
		return nil, err
	}
	draft.Author = author

	s.publish("post.created", draft.ID, map[string]any{
		"post_id":   draft.ID,
		"author_id": draft.AuthorID,
	})
	return draft, nil
}

// Edit applies a validated submission to an existing post. Only the author
// may edit; anyone else gets pkg.ErrNotAuthor (a refusal the handler turns
// into a redirect). Author and pub_date are never altered.
func (s *PostService) Edit(principalID, postID uint64, in PostInput) (*model.Post, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != principalID {
		return nil, pkg.ErrNotAuthor
	}

	draft, err := s.form.Validate(in, post)
	if err != nil {
		return nil, err
	}

	if err := s.posts.UpdateContent(post.ID, draft.Text, draft.GroupID); err != nil {
		return nil, err
	}
	return draft, nil
}

// publish emits a domain event when a producer is wired. Event delivery is
// best effort and never fails the request.
func (s *PostService) publish(eventType string, key uint64, payload map[string]any) {
	if s.events == nil {
		return
	}
	payload["type"] = eventType
	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn("marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.events.Send(ctx, pkg.EventKey(key), body); err != nil {
		s.log.Warn("publish event", zap.String("type", eventType), zap.Error(err))
	}
}
