package repository

import (
	"context"
	"errors"

	"em-check/internal/db"
	"em-check/internal/models"

	"gorm.io/gorm"
)

// TemplateRow is a template joined with its creator's display name.
type TemplateRow struct {
	models.CheckTemplate
	CreatorName string
}

type TemplateRepository interface {
	Create(ctx context.Context, tpl *models.CheckTemplate) error
	GetByID(ctx context.Context, id uint) (*models.CheckTemplate, error)
	Update(ctx context.Context, tpl *models.CheckTemplate) error
	ListAll(ctx context.Context) ([]*TemplateRow, error)
	ListByTeam(ctx context.Context, team string) ([]*TemplateRow, error)
}

type gormTemplateRepository struct {
	db *gorm.DB
}

func NewGormTemplateRepository(database *gorm.DB) TemplateRepository {
	return &gormTemplateRepository{db: database}
}

func (r *gormTemplateRepository) conn(ctx context.Context) *gorm.DB {
	return db.FromContext(ctx, r.db)
}

func (r *gormTemplateRepository) Create(ctx context.Context, tpl *models.CheckTemplate) error {
	return r.conn(ctx).Create(tpl).Error
}

func (r *gormTemplateRepository) GetByID(ctx context.Context, id uint) (*models.CheckTemplate, error) {
	var tpl models.CheckTemplate
	if err := r.conn(ctx).First(&tpl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

func (r *gormTemplateRepository) Update(ctx context.Context, tpl *models.CheckTemplate) error {
	return r.conn(ctx).Model(&models.CheckTemplate{}).
		Where("id = ?", tpl.ID).
		Updates(map[string]any{
			"name":      tpl.Name,
			"team":      tpl.Team,
			"structure": tpl.Structure,
		}).Error
}

func (r *gormTemplateRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.conn(ctx).Model(&models.CheckTemplate{}).
		Select("check_templates.*, users.name AS creator_name").
		Joins("LEFT JOIN users ON check_templates.created_by = users.id").
		Order("check_templates.created_at DESC")
}

func (r *gormTemplateRepository) ListAll(ctx context.Context) ([]*TemplateRow, error) {
	var rows []*TemplateRow
	err := r.listQuery(ctx).Scan(&rows).Error
	return rows, err
}

func (r *gormTemplateRepository) ListByTeam(ctx context.Context, team string) ([]*TemplateRow, error) {
	var rows []*TemplateRow
	err := r.listQuery(ctx).Where("check_templates.team = ?", team).Scan(&rows).Error
	return rows, err
}
