package service

import (
	"context"

	"em-check/internal/models"
	"em-check/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*models.User, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role models.UserRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateTeam(ctx context.Context, id uint, team string) error {
	args := m.Called(ctx, id, team)
	return args.Error(0)
}

func (m *MockUserRepository) DistinctTeams(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, tpl *models.CheckTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) GetByID(ctx context.Context, id uint) (*models.CheckTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Update(ctx context.Context, tpl *models.CheckTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) ListAll(ctx context.Context) ([]*repository.TemplateRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.TemplateRow), args.Error(1)
}

func (m *MockTemplateRepository) ListByTeam(ctx context.Context, team string) ([]*repository.TemplateRow, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.TemplateRow), args.Error(1)
}

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Create(ctx context.Context, rec *models.CheckRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordRepository) GetByID(ctx context.Context, id uint) (*repository.RecordRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RecordRow), args.Error(1)
}

func (m *MockRecordRepository) Update(ctx context.Context, id uint, data string) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockRecordRepository) ListAll(ctx context.Context) ([]*repository.RecordRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.RecordRow), args.Error(1)
}

func (m *MockRecordRepository) ListByTeam(ctx context.Context, team string) ([]*repository.RecordRow, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.RecordRow), args.Error(1)
}
