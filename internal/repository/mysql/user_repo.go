package mysql

import (
	"inkwell/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return wrapErr(r.DB.Create(user).Error)
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(user *model.User, hash string) error {
	return wrapErr(r.DB.Model(user).Update("password", hash).Error)
}

// Delete removes an account. The posts foreign key cascades, so the author's
// posts go with it. Administrative capability, not routed through the API.
func (r *UserRepository) Delete(id uint64) error {
	return wrapErr(r.DB.Delete(&model.User{}, id).Error)
}
