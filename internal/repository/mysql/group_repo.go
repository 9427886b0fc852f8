package mysql

import (
	"inkwell/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

// Create inserts a group. A title or slug collision surfaces as
// pkg.ErrConstraintViolation.
func (r *GroupRepository) Create(group *model.Group) error {
	return wrapErr(r.DB.Create(group).Error)
}

func (r *GroupRepository) FindByID(id uint64) (*model.Group, error) {
	var group model.Group
	if err := r.DB.First(&group, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &group, nil
}

func (r *GroupRepository) FindBySlug(slug string) (*model.Group, error) {
	var group model.Group
	if err := r.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &group, nil
}

func (r *GroupRepository) List(offset, limit int) ([]model.Group, error) {
	var list []model.Group
	err := r.DB.Order("title").Offset(offset).Limit(limit).Find(&list).Error
	return list, wrapErr(err)
}

func (r *GroupRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Group{}).Count(&n).Error
	return n, wrapErr(err)
}

// Delete hard-deletes a group. Posts keep their rows; the group reference is
// cleared by the SET NULL foreign key. Administrative capability.
func (r *GroupRepository) Delete(id uint64) error {
	return wrapErr(r.DB.Delete(&model.Group{}, id).Error)
}
