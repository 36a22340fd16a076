package repository

import (
	"context"
	"errors"

	"em-check/internal/db"
	"em-check/internal/models"

	"gorm.io/gorm"
)

// RecordRow is a record joined with its template's name/team and the
// creator's display name, the shape the record list page shows.
type RecordRow struct {
	models.CheckRecord
	TemplateName string
	TemplateTeam string
	CreatorName  string
}

type RecordRepository interface {
	Create(ctx context.Context, rec *models.CheckRecord) error
	GetByID(ctx context.Context, id uint) (*RecordRow, error)
	Update(ctx context.Context, id uint, data string) error
	ListAll(ctx context.Context) ([]*RecordRow, error)
	ListByTeam(ctx context.Context, team string) ([]*RecordRow, error)
}

type gormRecordRepository struct {
	db *gorm.DB
}

func NewGormRecordRepository(database *gorm.DB) RecordRepository {
	return &gormRecordRepository{db: database}
}

func (r *gormRecordRepository) conn(ctx context.Context) *gorm.DB {
	return db.FromContext(ctx, r.db)
}

func (r *gormRecordRepository) Create(ctx context.Context, rec *models.CheckRecord) error {
	return r.conn(ctx).Create(rec).Error
}

func (r *gormRecordRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.conn(ctx).Model(&models.CheckRecord{}).
		Select("check_records.*, check_templates.name AS template_name, check_templates.team AS template_team, users.name AS creator_name").
		Joins("LEFT JOIN check_templates ON check_records.template_id = check_templates.id").
		Joins("LEFT JOIN users ON check_records.created_by = users.id")
}

func (r *gormRecordRepository) GetByID(ctx context.Context, id uint) (*RecordRow, error) {
	var row RecordRow
	err := r.listQuery(ctx).Where("check_records.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *gormRecordRepository) Update(ctx context.Context, id uint, data string) error {
	res := r.conn(ctx).Model(&models.CheckRecord{}).Where("id = ?", id).Update("data", data)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRecordRepository) ListAll(ctx context.Context) ([]*RecordRow, error) {
	var rows []*RecordRow
	err := r.listQuery(ctx).Order("check_records.created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *gormRecordRepository) ListByTeam(ctx context.Context, team string) ([]*RecordRow, error) {
	var rows []*RecordRow
	err := r.listQuery(ctx).
		Where("check_templates.team = ?", team).
		Order("check_records.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
