package repository

import (
	"context"

	"go-inventory-ledger/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, user *model.User) error
	CreateAuth(ctx context.Context, auth *model.Auth) error
	UpdatePassword(ctx context.Context, userID uint, hashedPassword string) error
	UpdateSessionVersion(ctx context.Context, userID uint, version string) error
	UpdatePermissionsLevel(ctx context.Context, userID uint, level int) error
	WithTx(tx *gorm.DB) UserRepository
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) WithTx(tx *gorm.DB) UserRepository {
	return &userRepo{tx}
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Auth").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Auth").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Auth").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &model.User{}, id)
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepo) CreateAuth(ctx context.Context, auth *model.Auth) error {
	return r.db.WithContext(ctx).Create(auth).Error
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID uint, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&model.Auth{}).Where("user_id = ?", userID).Update("password_hash", hashedPassword).Error
}

func (r *userRepo) UpdateSessionVersion(ctx context.Context, userID uint, version string) error {
	return r.db.WithContext(ctx).Model(&model.Auth{}).Where("user_id = ?", userID).Update("session_version", version).Error
}

func (r *userRepo) UpdatePermissionsLevel(ctx context.Context, userID uint, level int) error {
	return r.db.WithContext(ctx).Model(&model.Auth{}).Where("user_id = ?", userID).Update("permissions_level", level).Error
}
