package service

import (
	"context"
	"testing"

	"em-check/internal/models"
	"em-check/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:            "Zhang San",
		EmployeeID:      "EMP001",
		Phone:           "13812345678",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Team:            "T1",
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*RegisterInput)
		setupMocks    func(*MockUserRepository)
		expectedError bool
		errorCode     ErrorCode
	}{
		{
			name: "success",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmployeeID", mock.Anything, "EMP001").Return(nil, repository.ErrNotFound)
				ur.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.EmployeeID == "EMP001" &&
						u.Role == models.RoleUser &&
						u.Team != nil && *u.Team == "T1" &&
						u.PasswordHash != "" && u.PasswordHash != "secret123"
				})).Return(nil)
			},
		},
		{
			name: "duplicate employee id",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmployeeID", mock.Anything, "EMP001").
					Return(&models.User{ID: 7, EmployeeID: "EMP001"}, nil)
			},
			expectedError: true,
			errorCode:     ErrorCodeDuplicateEmployee,
		},
		{
			name:   "employee id with punctuation",
			mutate: func(in *RegisterInput) { in.EmployeeID = "EMP-001" },
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmployeeID", mock.Anything, "EMP-001").Return(nil, repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodeInvalidEmployeeID,
		},
		{
			name:   "missing name",
			mutate: func(in *RegisterInput) { in.Name = "" },
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmployeeID", mock.Anything, "EMP001").Return(nil, repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodeMissingField,
		},
		{
			name:   "missing team",
			mutate: func(in *RegisterInput) { in.Team = "" },
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmployeeID", mock.Anything, "EMP001").Return(nil, repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodeMissingField,
		},
		{
			name:   "password mismatch",
			mutate: func(in *RegisterInput) { in.ConfirmPassword = "other" },
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmployeeID", mock.Anything, "EMP001").Return(nil, repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodePasswordMismatch,
		},
		{
			name:   "phone too short",
			mutate: func(in *RegisterInput) { in.Phone = "1381234" },
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmployeeID", mock.Anything, "EMP001").Return(nil, repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodeInvalidPhone,
		},
		{
			name:   "phone with bad second digit",
			mutate: func(in *RegisterInput) { in.Phone = "12812345678" },
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmployeeID", mock.Anything, "EMP001").Return(nil, repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodeInvalidPhone,
		},
		{
			name: "create races with another registration",
			setupMocks: func(ur *MockUserRepository) {
				ur.On("GetByEmployeeID", mock.Anything, "EMP001").Return(nil, repository.ErrNotFound)
				ur.On("Create", mock.Anything, mock.Anything).Return(repository.ErrAlreadyExists)
			},
			expectedError: true,
			errorCode:     ErrorCodeDuplicateEmployee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMocks(mockUsers)

			in := validRegisterInput()
			if tt.mutate != nil {
				tt.mutate(&in)
			}

			svc := NewAuthService(mockUsers)
			user, svcErr := svc.Register(context.Background(), in)

			if tt.expectedError {
				require.NotNil(t, svcErr)
				assert.Equal(t, tt.errorCode, svcErr.Code)
				assert.Nil(t, user)
			} else {
				require.Nil(t, svcErr)
				require.NotNil(t, user)
				assert.Equal(t, models.RoleUser, user.Role)
			}

			mockUsers.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &models.User{
		ID:           5,
		Name:         "Zhang San",
		EmployeeID:   "EMP001",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}

	t.Run("success", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("GetByEmployeeID", mock.Anything, "EMP001").Return(stored, nil)

		svc := NewAuthService(mockUsers)
		user, svcErr := svc.Login(context.Background(), "EMP001", "secret123")

		require.Nil(t, svcErr)
		assert.Equal(t, uint(5), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("GetByEmployeeID", mock.Anything, "EMP001").Return(stored, nil)

		svc := NewAuthService(mockUsers)
		user, svcErr := svc.Login(context.Background(), "EMP001", "wrong")

		require.NotNil(t, svcErr)
		assert.Equal(t, ErrorCodeInvalidCredentials, svcErr.Code)
		assert.Nil(t, user)
	})

	t.Run("unknown employee id", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("GetByEmployeeID", mock.Anything, "NOPE").Return(nil, repository.ErrNotFound)

		svc := NewAuthService(mockUsers)
		user, svcErr := svc.Login(context.Background(), "NOPE", "secret123")

		require.NotNil(t, svcErr)
		assert.Equal(t, ErrorCodeInvalidCredentials, svcErr.Code)
		assert.Nil(t, user)
	})

	// an unknown id and a wrong password must be indistinguishable
	t.Run("identical error either way", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("GetByEmployeeID", mock.Anything, "EMP001").Return(stored, nil)
		mockUsers.On("GetByEmployeeID", mock.Anything, "NOPE").Return(nil, repository.ErrNotFound)

		svc := NewAuthService(mockUsers)
		_, errWrongPassword := svc.Login(context.Background(), "EMP001", "wrong")
		_, errUnknownID := svc.Login(context.Background(), "NOPE", "whatever")

		require.NotNil(t, errWrongPassword)
		require.NotNil(t, errUnknownID)
		assert.Equal(t, errWrongPassword.Code, errUnknownID.Code)
		assert.Equal(t, errWrongPassword.Message, errUnknownID.Message)
	})
}
