package auth

import (
	"context"
	"fmt"
	"time"

	"go-fileshare/internal/common/errs"
	"go-fileshare/internal/features/user"
	"go-fileshare/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Session is the result of a successful register or login.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}

type AuthServiceImpl struct {
	UserRepo user.UserRepository
}

func NewAuthService(userRepo user.UserRepository) AuthService {
	return &AuthServiceImpl{
		UserRepo: userRepo,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", errs.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", errs.ErrValidation)
	}

	if _, err := s.UserRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("user already exists: %w", errs.ErrValidation)
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("lookup user: %w", errs.ErrStore)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		Email:     email,
		Password:  string(hashed),
		CreatedAt: time.Now(),
	}
	if err := s.UserRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("create user: %w", errs.ErrStore)
	}

	token, err := utils.GenerateToken(newUser.ID, newUser.Email)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, UserID: newUser.ID.Hex(), Email: newUser.Email}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", errs.ErrValidation)
	}

	usr, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", errs.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", errs.ErrUnauthenticated)
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, UserID: usr.ID.Hex(), Email: usr.Email}, nil
}
