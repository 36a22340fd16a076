package repository

import (
	"context"
	"errors"

	"em-check/internal/db"
	"em-check/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, id uint, role models.UserRole) error
	UpdateTeam(ctx context.Context, id uint, team string) error
	DistinctTeams(ctx context.Context) ([]string, error)
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(database *gorm.DB) UserRepository {
	return &gormUserRepository{db: database}
}

func (r *gormUserRepository) conn(ctx context.Context) *gorm.DB {
	return db.FromContext(ctx, r.db)
}

func (r *gormUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.conn(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*models.User, error) {
	var user models.User
	err := r.conn(ctx).Where("employee_id = ?", employeeID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	var count int64
	if err := r.conn(ctx).Model(&models.User{}).
		Where("employee_id = ?", user.EmployeeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyExists
	}
	return r.conn(ctx).Create(user).Error
}

func (r *gormUserRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.conn(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *gormUserRepository) UpdateRole(ctx context.Context, id uint, role models.UserRole) error {
	res := r.conn(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) UpdateTeam(ctx context.Context, id uint, team string) error {
	res := r.conn(ctx).Model(&models.User{}).Where("id = ?", id).Update("team", team)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) DistinctTeams(ctx context.Context) ([]string, error) {
	var teams []string
	err := r.conn(ctx).Model(&models.User{}).
		Distinct("team").
		Where("team IS NOT NULL AND team <> ''").
		Order("team").
		Pluck("team", &teams).Error
	return teams, err
}
