// Package service holds the application core: form validation, listing and
// pagination, and the post lifecycle. Services depend on storage through the
// interfaces below; internal/repository/mysql provides the production
// implementations.
package service

import "inkwell/internal/model"

type PostRepo interface {
	Create(post *model.Post) error
	FindByID(id uint64) (*model.Post, error)
	UpdateContent(id uint64, text string, groupID *uint64) error
	ListAll(offset, limit int) ([]model.Post, error)
	CountAll() (int64, error)
	ListByGroup(groupID uint64, offset, limit int) ([]model.Post, error)
	CountByGroup(groupID uint64) (int64, error)
	ListByAuthor(authorID uint64, offset, limit int) ([]model.Post, error)
	CountByAuthor(authorID uint64) (int64, error)
	ListByAuthors(authorIDs []uint64, offset, limit int) ([]model.Post, error)
	CountByAuthors(authorIDs []uint64) (int64, error)
}

type GroupRepo interface {
	FindByID(id uint64) (*model.Group, error)
	FindBySlug(slug string) (*model.Group, error)
	List(offset, limit int) ([]model.Group, error)
	Count() (int64, error)
}

type UserRepo interface {
	Create(user *model.User) error
	FindByID(id uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	UpdatePassword(user *model.User, hash string) error
}

type SubscriptionRepo interface {
	Subscribe(followerID, authorID uint64) (bool, error)
	Unsubscribe(followerID, authorID uint64) (bool, error)
	IsSubscribed(followerID, authorID uint64) (bool, error)
	AuthorIDs(followerID uint64) ([]uint64, error)
}

// SessionStore pins one access token per logged-in user.
type SessionStore interface {
	Save(userID uint64, token string) error
	Delete(userID uint64) error
}

// CodeStore keeps emailed verification codes until verified or expired.
type CodeStore interface {
	Save(scope, email, code string) error
	Get(scope, email string) (string, error)
	Delete(scope, email string) error
}
