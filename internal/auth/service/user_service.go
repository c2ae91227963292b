package service

import (
	"context"
	"fmt"
	"time"

	"github.com/SudarshanShah/MovieApi/internal/auth/domain"
	"github.com/SudarshanShah/MovieApi/internal/auth/dto"
	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
	"github.com/SudarshanShah/MovieApi/pkg/constant"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo           domain.UserRepository
	tokenService   TokenGenerator
	refreshService *RefreshService
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, refreshService *RefreshService) *UserService {
	return &UserService{
		repo:           repo,
		tokenService:   tokenService,
		refreshService: refreshService,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	existingUser, err = s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, autherror.ErrUsernameAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role != constant.RoleAdmin {
		role = constant.DefaultRole
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	// One message for both unknown user and wrong password, so login
	// responses cannot be used to enumerate accounts.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token itself is returned unchanged.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.AuthResponse, error) {
	rt, err := s.refreshService.Verify(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, rt.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	accessToken, err := s.tokenService.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: rt.Token,
	}, nil
}

func (s *UserService) issueTokens(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	accessToken, err := s.tokenService.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	rt, err := s.refreshService.CreateOrGet(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: rt.Token,
		Name:         user.Name,
		Email:        user.Email,
	}, nil
}
