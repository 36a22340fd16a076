package service

import (
	"context"
	"errors"

	"em-check/internal/authz"
	"em-check/internal/models"
	"em-check/internal/repository"
	"em-check/internal/schema"
)

type RecordService struct {
	records   repository.RecordRepository
	templates repository.TemplateRepository
}

func NewRecordService(records repository.RecordRepository, templates repository.TemplateRepository) *RecordService {
	return &RecordService{records: records, templates: templates}
}

// RecordDetail is a record decoded for presentation: the template's fields
// in column order, each with the submitted value.
type RecordDetail struct {
	Row    *repository.RecordRow
	Fields []schema.FieldValue
}

// List returns records visible to actor, scoped by the owning template's
// team like template listing. Newest first.
func (s *RecordService) List(ctx context.Context, actor authz.Actor) ([]*repository.RecordRow, *Error) {
	var (
		rows []*repository.RecordRow
		err  error
	)
	if actor.Role == models.RoleSuperAdmin {
		rows, err = s.records.ListAll(ctx)
	} else {
		rows, err = s.records.ListByTeam(ctx, actor.Team)
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to list records")
	}
	return rows, nil
}

// Create files a record against a template. The payload must decode as a
// JSON object; the template's required/type metadata is not enforced.
func (s *RecordService) Create(ctx context.Context, actor authz.Actor, templateID uint, data string) (*models.CheckRecord, *Error) {
	tpl, err := s.templates.GetByID(ctx, templateID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "template not found")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to load template")
	}
	if d := authz.Authorize(actor, authz.ActionCreateRecord, tpl.Team); !d.Allowed {
		return nil, NewError(ErrorCodeForbidden, d.Reason)
	}
	if data == "" {
		return nil, NewError(ErrorCodeMissingField, "please fill in the form data")
	}
	if _, err := schema.ParseData(data); err != nil {
		return nil, NewError(ErrorCodeMalformedData, err.Error())
	}

	rec := &models.CheckRecord{
		TemplateID: templateID,
		Data:       data,
		CreatedBy:  actor.ID,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to save record")
	}
	return rec, nil
}

// Get loads a record joined with its template and decodes both JSON
// documents into ordered field/value pairs.
func (s *RecordService) Get(ctx context.Context, id uint) (*RecordDetail, *Error) {
	row, err := s.records.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "record not found")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to load record")
	}

	tpl, err := s.templates.GetByID(ctx, row.TemplateID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "template not found")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to load template")
	}

	structure, err := schema.ParseStructure(tpl.Structure)
	if err != nil {
		return nil, NewError(ErrorCodeMalformedSchema, err.Error())
	}
	data, err := schema.ParseData(row.Data)
	if err != nil {
		return nil, NewError(ErrorCodeMalformedData, err.Error())
	}

	return &RecordDetail{Row: row, Fields: structure.Pairs(data)}, nil
}

// Update rewrites a record's payload. Super admin only.
func (s *RecordService) Update(ctx context.Context, actor authz.Actor, id uint, data string) *Error {
	row, err := s.records.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return NewError(ErrorCodeNotFound, "record not found")
	}
	if err != nil {
		return NewError(ErrorCodeUnspecified, "failed to load record")
	}
	if d := authz.Authorize(actor, authz.ActionEditRecord, row.TemplateTeam); !d.Allowed {
		return NewError(ErrorCodeForbidden, d.Reason)
	}
	if data == "" {
		return NewError(ErrorCodeMissingField, "please fill in the form data")
	}
	if _, err := schema.ParseData(data); err != nil {
		return NewError(ErrorCodeMalformedData, err.Error())
	}
	if err := s.records.Update(ctx, id, data); err != nil {
		return NewError(ErrorCodeUnspecified, "failed to save record")
	}
	return nil
}
