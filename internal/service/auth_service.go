package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"em-check/internal/models"
	"em-check/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	employeeIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	// 11-digit mobile number: leading 1, second digit 3-9
	phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
)

type AuthService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

type RegisterInput struct {
	Name            string
	EmployeeID      string
	Phone           string
	Password        string
	ConfirmPassword string
	Team            string
}

// Register creates a regular-role account. No session is established here;
// the new user logs in separately.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, *Error) {
	in.Name = strings.TrimSpace(in.Name)
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Team = strings.TrimSpace(in.Team)

	if _, err := s.users.GetByEmployeeID(ctx, in.EmployeeID); err == nil {
		return nil, NewError(ErrorCodeDuplicateEmployee, "this employee id is already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeUnspecified, "failed to check employee id")
	}
	if !employeeIDPattern.MatchString(in.EmployeeID) {
		return nil, NewError(ErrorCodeInvalidEmployeeID, "employee id may only contain letters and digits")
	}
	if in.Name == "" || in.EmployeeID == "" || in.Password == "" || in.Phone == "" || in.Team == "" {
		return nil, NewError(ErrorCodeMissingField, "please fill in all fields")
	}
	if in.Password != in.ConfirmPassword {
		return nil, NewError(ErrorCodePasswordMismatch, "the two passwords do not match")
	}
	if !phonePattern.MatchString(in.Phone) {
		return nil, NewError(ErrorCodeInvalidPhone, "please enter a valid mobile number")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to hash password")
	}

	team := in.Team
	user := &models.User{
		Name:         in.Name,
		EmployeeID:   in.EmployeeID,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Team:         &team,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, NewError(ErrorCodeDuplicateEmployee, "this employee id is already registered")
		}
		return nil, NewError(ErrorCodeUnspecified, "failed to save user")
	}
	return user, nil
}

// Login verifies the employee id and password. The error is the same for an
// unknown id and a wrong password.
func (s *AuthService) Login(ctx context.Context, employeeID, password string) (*models.User, *Error) {
	user, err := s.users.GetByEmployeeID(ctx, employeeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeInvalidCredentials, "incorrect employee id or password")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to look up user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, NewError(ErrorCodeInvalidCredentials, "incorrect employee id or password")
	}
	return user, nil
}
