package service

import (
	"context"
	"errors"
	"strings"

	"em-check/internal/authz"
	"em-check/internal/models"
	"em-check/internal/repository"
	"em-check/internal/schema"
)

type TemplateService struct {
	templates repository.TemplateRepository
}

func NewTemplateService(templates repository.TemplateRepository) *TemplateService {
	return &TemplateService{templates: templates}
}

// List returns templates visible to actor: every team for the super admin,
// the actor's own team otherwise. Newest first.
func (s *TemplateService) List(ctx context.Context, actor authz.Actor) ([]*repository.TemplateRow, *Error) {
	var (
		rows []*repository.TemplateRow
		err  error
	)
	if actor.Role == models.RoleSuperAdmin {
		rows, err = s.templates.ListAll(ctx)
	} else {
		rows, err = s.templates.ListByTeam(ctx, actor.Team)
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to list templates")
	}
	return rows, nil
}

func (s *TemplateService) Get(ctx context.Context, id uint) (*models.CheckTemplate, *Error) {
	tpl, err := s.templates.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "template not found")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to load template")
	}
	return tpl, nil
}

func (s *TemplateService) Create(ctx context.Context, actor authz.Actor, name, team, structure string) (*models.CheckTemplate, *Error) {
	if d := authz.Authorize(actor, authz.ActionCreateTemplate, team); !d.Allowed {
		return nil, NewError(ErrorCodeForbidden, d.Reason)
	}
	if svcErr := validateTemplateFields(name, team, structure); svcErr != nil {
		return nil, svcErr
	}

	tpl := &models.CheckTemplate{
		Name:      strings.TrimSpace(name),
		Team:      team,
		Structure: structure,
		CreatedBy: actor.ID,
	}
	if err := s.templates.Create(ctx, tpl); err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to save template")
	}
	return tpl, nil
}

func (s *TemplateService) Update(ctx context.Context, actor authz.Actor, id uint, name, team, structure string) (*models.CheckTemplate, *Error) {
	tpl, svcErr := s.Get(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	// authorization is against the team the template already belongs to
	if d := authz.Authorize(actor, authz.ActionEditTemplate, tpl.Team); !d.Allowed {
		return nil, NewError(ErrorCodeForbidden, d.Reason)
	}
	if svcErr := validateTemplateFields(name, team, structure); svcErr != nil {
		return nil, svcErr
	}

	tpl.Name = strings.TrimSpace(name)
	tpl.Team = team
	tpl.Structure = structure
	if err := s.templates.Update(ctx, tpl); err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to save template")
	}
	return tpl, nil
}

func validateTemplateFields(name, team, structure string) *Error {
	if strings.TrimSpace(name) == "" || team == "" || structure == "" {
		return NewError(ErrorCodeMissingField, "please fill in all required fields")
	}
	if _, err := schema.ParseStructure(structure); err != nil {
		return NewError(ErrorCodeMalformedSchema, err.Error())
	}
	return nil
}
