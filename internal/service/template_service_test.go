package service

import (
	"context"
	"testing"

	"em-check/internal/authz"
	"em-check/internal/models"
	"em-check/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testStructure = `{"columns": [{"name": "Equipment", "type": "text", "required": true}]}`

func TestTemplateService_List(t *testing.T) {
	t1Rows := []*repository.TemplateRow{
		{CheckTemplate: models.CheckTemplate{ID: 1, Name: "Daily Check", Team: "T1"}, CreatorName: "Wang Wu"},
	}
	allRows := append([]*repository.TemplateRow{
		{CheckTemplate: models.CheckTemplate{ID: 2, Name: "Other", Team: "T2"}},
	}, t1Rows...)

	t.Run("super admin sees every team", func(t *testing.T) {
		mockTemplates := new(MockTemplateRepository)
		mockTemplates.On("ListAll", mock.Anything).Return(allRows, nil)

		svc := NewTemplateService(mockTemplates)
		rows, svcErr := svc.List(context.Background(), authz.Actor{ID: 1, Role: models.RoleSuperAdmin})

		require.Nil(t, svcErr)
		assert.Len(t, rows, 2)
		mockTemplates.AssertExpectations(t)
	})

	t.Run("user sees only their team", func(t *testing.T) {
		mockTemplates := new(MockTemplateRepository)
		mockTemplates.On("ListByTeam", mock.Anything, "T1").Return(t1Rows, nil)

		svc := NewTemplateService(mockTemplates)
		actor := authz.Actor{ID: 3, Role: models.RoleUser, Team: "T1"}
		rows, svcErr := svc.List(context.Background(), actor)

		require.Nil(t, svcErr)
		for _, r := range rows {
			assert.Equal(t, actor.Team, r.Team)
		}
		mockTemplates.AssertExpectations(t)
	})

	t.Run("admin sees only their team", func(t *testing.T) {
		mockTemplates := new(MockTemplateRepository)
		mockTemplates.On("ListByTeam", mock.Anything, "T1").Return(t1Rows, nil)

		svc := NewTemplateService(mockTemplates)
		_, svcErr := svc.List(context.Background(), authz.Actor{ID: 2, Role: models.RoleAdmin, Team: "T1"})

		require.Nil(t, svcErr)
		mockTemplates.AssertExpectations(t)
	})
}

func TestTemplateService_Create(t *testing.T) {
	admin := authz.Actor{ID: 2, Role: models.RoleAdmin, Team: "T1"}

	tests := []struct {
		name          string
		actor         authz.Actor
		tplName       string
		team          string
		structure     string
		setupMocks    func(*MockTemplateRepository)
		expectedError bool
		errorCode     ErrorCode
	}{
		{
			name:      "admin creates template",
			actor:     admin,
			tplName:   "Daily Check",
			team:      "T1",
			structure: testStructure,
			setupMocks: func(tr *MockTemplateRepository) {
				tr.On("Create", mock.Anything, mock.MatchedBy(func(tpl *models.CheckTemplate) bool {
					return tpl.Name == "Daily Check" && tpl.Team == "T1" && tpl.CreatedBy == 2
				})).Return(nil)
			},
		},
		{
			name:      "super admin creates for any team",
			actor:     authz.Actor{ID: 1, Role: models.RoleSuperAdmin},
			tplName:   "Daily Check",
			team:      "T9",
			structure: testStructure,
			setupMocks: func(tr *MockTemplateRepository) {
				tr.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:          "regular user forbidden",
			actor:         authz.Actor{ID: 3, Role: models.RoleUser, Team: "T1"},
			tplName:       "Daily Check",
			team:          "T1",
			structure:     testStructure,
			setupMocks:    func(tr *MockTemplateRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeForbidden,
		},
		{
			name:          "missing name",
			actor:         admin,
			tplName:       "",
			team:          "T1",
			structure:     testStructure,
			setupMocks:    func(tr *MockTemplateRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeMissingField,
		},
		{
			name:          "missing structure",
			actor:         admin,
			tplName:       "Daily Check",
			team:          "T1",
			structure:     "",
			setupMocks:    func(tr *MockTemplateRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeMissingField,
		},
		{
			name:          "structure does not decode",
			actor:         admin,
			tplName:       "Daily Check",
			team:          "T1",
			structure:     `{"columns": [{"name": "x", "type": "wat"}]}`,
			setupMocks:    func(tr *MockTemplateRepository) {},
			expectedError: true,
			errorCode:     ErrorCodeMalformedSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTemplates := new(MockTemplateRepository)
			tt.setupMocks(mockTemplates)

			svc := NewTemplateService(mockTemplates)
			tpl, svcErr := svc.Create(context.Background(), tt.actor, tt.tplName, tt.team, tt.structure)

			if tt.expectedError {
				require.NotNil(t, svcErr)
				assert.Equal(t, tt.errorCode, svcErr.Code)
				assert.Nil(t, tpl)
			} else {
				require.Nil(t, svcErr)
				require.NotNil(t, tpl)
			}

			mockTemplates.AssertExpectations(t)
		})
	}
}

func TestTemplateService_Update(t *testing.T) {
	existing := &models.CheckTemplate{ID: 7, Name: "Daily Check", Team: "T1", Structure: testStructure}

	t.Run("admin of owning team updates", func(t *testing.T) {
		mockTemplates := new(MockTemplateRepository)
		mockTemplates.On("GetByID", mock.Anything, uint(7)).Return(existing, nil)
		mockTemplates.On("Update", mock.Anything, mock.MatchedBy(func(tpl *models.CheckTemplate) bool {
			return tpl.ID == 7 && tpl.Name == "Daily Check v2"
		})).Return(nil)

		svc := NewTemplateService(mockTemplates)
		actor := authz.Actor{ID: 2, Role: models.RoleAdmin, Team: "T1"}
		tpl, svcErr := svc.Update(context.Background(), actor, 7, "Daily Check v2", "T1", testStructure)

		require.Nil(t, svcErr)
		assert.Equal(t, "Daily Check v2", tpl.Name)
		mockTemplates.AssertExpectations(t)
	})

	t.Run("admin of another team forbidden", func(t *testing.T) {
		mockTemplates := new(MockTemplateRepository)
		mockTemplates.On("GetByID", mock.Anything, uint(7)).Return(existing, nil)

		svc := NewTemplateService(mockTemplates)
		actor := authz.Actor{ID: 4, Role: models.RoleAdmin, Team: "T2"}
		_, svcErr := svc.Update(context.Background(), actor, 7, "Hijacked", "T2", testStructure)

		require.NotNil(t, svcErr)
		assert.Equal(t, ErrorCodeForbidden, svcErr.Code)
		mockTemplates.AssertExpectations(t)
	})

	t.Run("unknown template", func(t *testing.T) {
		mockTemplates := new(MockTemplateRepository)
		mockTemplates.On("GetByID", mock.Anything, uint(99)).Return(nil, repository.ErrNotFound)

		svc := NewTemplateService(mockTemplates)
		actor := authz.Actor{ID: 1, Role: models.RoleSuperAdmin}
		_, svcErr := svc.Update(context.Background(), actor, 99, "X", "T1", testStructure)

		require.NotNil(t, svcErr)
		assert.Equal(t, ErrorCodeNotFound, svcErr.Code)
	})
}
