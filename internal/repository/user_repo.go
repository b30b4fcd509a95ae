package repository

import (
	"errors"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	UpdateCurrency(userID uuid.UUID, code string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &user, nil
}

func (r *userRepo) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *userRepo) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *userRepo) UpdateCurrency(userID uuid.UUID, code string) error {
	res := r.db.Model(&model.User{}).Where("id = ?", userID).Update("currency", code)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
