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
	"golang.org/x/crypto/bcrypt"
)

// Walks the whole workflow: a regular user registers and logs in, cannot
// create templates, an admin of the same team creates one, the user sees it,
// files a record against it, cannot edit the record, and the super admin can.
func TestCheckSheetWorkflow(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	userA := &models.User{ID: 10, Name: "Zhang San", EmployeeID: "EMPA", PasswordHash: string(hash), Role: models.RoleUser, Team: team("T1")}

	// register A
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmployeeID", mock.Anything, "EMPA").Return(nil, repository.ErrNotFound).Once()
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	authSvc := NewAuthService(mockUsers)
	_, svcErr := authSvc.Register(ctx, RegisterInput{
		Name: "Zhang San", EmployeeID: "EMPA", Phone: "13812345678",
		Password: "secret123", ConfirmPassword: "secret123", Team: "T1",
	})
	require.Nil(t, svcErr)

	// login A
	mockUsers.On("GetByEmployeeID", mock.Anything, "EMPA").Return(userA, nil).Once()
	loggedIn, svcErr := authSvc.Login(ctx, "EMPA", "secret123")
	require.Nil(t, svcErr)

	actorA := authz.Actor{ID: loggedIn.ID, Role: loggedIn.Role, Team: loggedIn.TeamName()}
	actorB := authz.Actor{ID: 20, Role: models.RoleAdmin, Team: "T1"}
	actorRoot := authz.Actor{ID: 1, Role: models.RoleSuperAdmin}

	// A may not create templates
	mockTemplates := new(MockTemplateRepository)
	tplSvc := NewTemplateService(mockTemplates)
	_, svcErr = tplSvc.Create(ctx, actorA, "Daily Check", "T1", testStructure)
	require.NotNil(t, svcErr)
	assert.Equal(t, ErrorCodeForbidden, svcErr.Code)

	// admin B creates "Daily Check"
	mockTemplates.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.CheckTemplate).ID = 7
	}).Return(nil).Once()
	tpl, svcErr := tplSvc.Create(ctx, actorB, "Daily Check", "T1", testStructure)
	require.Nil(t, svcErr)

	// A lists templates and sees it
	mockTemplates.On("ListByTeam", mock.Anything, "T1").Return([]*repository.TemplateRow{
		{CheckTemplate: *tpl, CreatorName: "Li Si"},
	}, nil).Once()
	rows, svcErr := tplSvc.List(ctx, actorA)
	require.Nil(t, svcErr)
	require.Len(t, rows, 1)
	assert.Equal(t, "Daily Check", rows[0].Name)

	// A files a record against it
	mockRecords := new(MockRecordRepository)
	recSvc := NewRecordService(mockRecords, mockTemplates)
	mockTemplates.On("GetByID", mock.Anything, uint(7)).Return(tpl, nil)
	mockRecords.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.CheckRecord).ID = 31
	}).Return(nil).Once()
	rec, svcErr := recSvc.Create(ctx, actorA, 7, `{"Equipment": "Pump 3"}`)
	require.Nil(t, svcErr)

	row := &repository.RecordRow{CheckRecord: *rec, TemplateName: "Daily Check", TemplateTeam: "T1", CreatorName: "Zhang San"}
	mockRecords.On("GetByID", mock.Anything, uint(31)).Return(row, nil)

	// A cannot edit the record
	svcErr = recSvc.Update(ctx, actorA, 31, `{"Equipment": "Pump 4"}`)
	require.NotNil(t, svcErr)
	assert.Equal(t, ErrorCodeForbidden, svcErr.Code)

	// the super admin can
	mockRecords.On("Update", mock.Anything, uint(31), `{"Equipment": "Pump 4"}`).Return(nil).Once()
	svcErr = recSvc.Update(ctx, actorRoot, 31, `{"Equipment": "Pump 4"}`)
	require.Nil(t, svcErr)

	mockUsers.AssertExpectations(t)
	mockTemplates.AssertExpectations(t)
	mockRecords.AssertExpectations(t)
}
