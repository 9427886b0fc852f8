package mysql

import (
	"inkwell/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// feedOrder is the one listing order: newest first, id as the stable tiebreak
// for posts published in the same instant.
const feedOrder = "pub_date DESC, id DESC"

type PostRepository struct {
	DB *gorm.DB
}

// Create inserts the post row only; Author and Group are references to rows
// that already exist, never written through here.
func (r *PostRepository) Create(post *model.Post) error {
	return wrapErr(r.DB.Omit(clause.Associations).Create(post).Error)
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &post, nil
}

// UpdateContent replaces text and group of an existing post. Author and
// pub_date are deliberately outside the update set.
func (r *PostRepository) UpdateContent(id uint64, text string, groupID *uint64) error {
	return wrapErr(r.DB.Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{"text": text, "group_id": groupID}).Error)
}

func (r *PostRepository) ListAll(offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Author").Preload("Group").
		Order(feedOrder).
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, wrapErr(err)
}

func (r *PostRepository) CountAll() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).Count(&n).Error
	return n, wrapErr(err)
}

func (r *PostRepository) ListByGroup(groupID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Author").
		Where("group_id = ?", groupID).
		Order(feedOrder).
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, wrapErr(err)
}

func (r *PostRepository) CountByGroup(groupID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).Where("group_id = ?", groupID).Count(&n).Error
	return n, wrapErr(err)
}

func (r *PostRepository) ListByAuthor(authorID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Group").
		Where("author_id = ?", authorID).
		Order(feedOrder).
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, wrapErr(err)
}

func (r *PostRepository) CountByAuthor(authorID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, wrapErr(err)
}

func (r *PostRepository) ListByAuthors(authorIDs []uint64, offset, limit int) ([]model.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var list []model.Post
	err := r.DB.Preload("Author").Preload("Group").
		Where("author_id IN ?", authorIDs).
		Order(feedOrder).
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, wrapErr(err)
}

func (r *PostRepository) CountByAuthors(authorIDs []uint64) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var n int64
	err := r.DB.Model(&model.Post{}).Where("author_id IN ?", authorIDs).Count(&n).Error
	return n, wrapErr(err)
}
