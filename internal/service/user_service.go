package service

import (
	"context"
	"errors"

	"em-check/internal/authz"
	"em-check/internal/db"
	"em-check/internal/models"
	"em-check/internal/repository"
)

type UserService struct {
	tx    db.Transactor
	users repository.UserRepository
}

func NewUserService(tx db.Transactor) *UserService {
	return &UserService{tx: tx}
}

func (s *UserService) WithUserRepo(users repository.UserRepository) *UserService {
	s.users = users
	return s
}

func (s *UserService) List(ctx context.Context) ([]*models.User, *Error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to list users")
	}
	return users, nil
}

func (s *UserService) DistinctTeams(ctx context.Context) ([]string, *Error) {
	teams, err := s.users.DistinctTeams(ctx)
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to list teams")
	}
	return teams, nil
}

// ChangeRole reads the target and applies the single-super-admin guards
// inside one transaction, so the guard and the update see the same row.
func (s *UserService) ChangeRole(ctx context.Context, actor authz.Actor, targetID uint, newRole string) (*models.User, *Error) {
	if !models.ValidRole(newRole) {
		return nil, NewError(ErrorCodeInvalidRole, "invalid user role")
	}
	role := models.UserRole(newRole)

	var target *models.User
	txErr := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		target, err = s.users.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if d := authz.CanChangeRole(actor, target, role); !d.Allowed {
			return NewError(ErrorCodeInvalidRole, d.Reason)
		}
		if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
			return err
		}
		target.Role = role
		return nil
	})
	if txErr != nil {
		return nil, asServiceError(txErr, "failed to change role")
	}
	return target, nil
}

// ChangeTeam reassigns the target's team under the same transactional guard.
func (s *UserService) ChangeTeam(ctx context.Context, actor authz.Actor, targetID uint, newTeam string) (*models.User, *Error) {
	var target *models.User
	txErr := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		target, err = s.users.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if d := authz.CanChangeTeam(actor, target, newTeam); !d.Allowed {
			return NewError(ErrorCodeInvalidTeam, d.Reason)
		}
		if err := s.users.UpdateTeam(ctx, targetID, newTeam); err != nil {
			return err
		}
		team := newTeam
		target.Team = &team
		return nil
	})
	if txErr != nil {
		return nil, asServiceError(txErr, "failed to change team")
	}
	return target, nil
}

// asServiceError maps repository sentinels and passes service errors
// through; anything else becomes a generic operation failure.
func asServiceError(err error, fallback string) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	if errors.Is(err, repository.ErrNotFound) {
		return NewError(ErrorCodeNotFound, "not found")
	}
	return NewError(ErrorCodeUnspecified, fallback)
}
