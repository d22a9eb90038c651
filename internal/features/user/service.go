package user

import (
	"context"
	"fmt"

	"go-fileshare/internal/common/errs"

	"go.mongodb.org/mongo-driver/mongo"
)

type UserService interface {
	ListUsers(ctx context.Context, excludeID string) ([]*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
}

type UserServiceImpl struct {
	UserRepo UserRepository
}

func NewUserService(userRepo UserRepository) UserService {
	return &UserServiceImpl{
		UserRepo: userRepo,
	}
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, excludeID string) ([]*User, error) {
	users, err := s.UserRepo.List(ctx, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", errs.ErrStore)
	}
	if users == nil {
		users = []*User{}
	}
	return users, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*User, error) {
	usr, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("find user: %w", errs.ErrStore)
	}
	return usr, nil
}
