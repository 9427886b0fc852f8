package service

import (
	"errors"
	"strings"

	"inkwell/internal/model"
	"inkwell/internal/pkg"
)

// PostInput is the raw submission for creating or editing a post.
type PostInput struct {
	Text    string  `json:"text"`
	GroupID *uint64 `json:"group_id"`
}

// PostForm validates post submissions. It never persists anything; on success
// the caller gets an unsaved draft with text and group filled in, and stays
// responsible for author and pub_date.
type PostForm struct {
	groups GroupRepo
}

func NewPostForm(groups GroupRepo) *PostForm {
	return &PostForm{groups: groups}
}

// Validate checks the input and materializes a draft. When existing is given
// (edit), the draft starts as a copy of it, so author and pub_date carry over
// untouched; text and group are always replaced by the submitted values, and
// an absent group clears the reference.
func (f *PostForm) Validate(in PostInput, existing *model.Post) (*model.Post, error) {
	var errs pkg.ValidationErrors

	text := strings.TrimSpace(in.Text)
	if text == "" {
		errs.Add("text", "text must not be empty")
	}

	var group *model.Group
	if in.GroupID != nil {
		g, err := f.groups.FindByID(*in.GroupID)
		switch {
		case errors.Is(err, pkg.ErrNotFound):
			errs.Add("group", "group does not exist")
		case err != nil:
			return nil, err
		default:
			group = g
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	draft := &model.Post{}
	if existing != nil {
		clone := *existing
		draft = &clone
	}
	draft.Text = text
	draft.GroupID = in.GroupID
	draft.Group = group
	return draft, nil
}
