package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/pkg/logger"
	"healthcare-chatbot-be/internal/pkg/token"
	"healthcare-chatbot-be/internal/repository/specification"
	"healthcare-chatbot-be/internal/repository/unitofwork"
	"healthcare-chatbot-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Authenticate resolves a bearer token to its stored user.
	Authenticate(ctx context.Context, rawToken string) (*entity.User, error)
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	tokens         *token.Manager
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, tokens *token.Manager, eventPublisher events.Publisher, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		tokens:         tokens,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	conditions := req.ExistingConditions
	if conditions == nil {
		conditions = []string{}
	}

	user := &entity.User{
		Id:                 uuid.New(),
		Email:              email,
		PasswordHash:       string(hash),
		FullName:           strings.TrimSpace(req.FullName),
		Age:                req.Age,
		ExistingConditions: conditions,
		CreatedAt:          time.Now().UTC(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	res, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User registered", map[string]interface{}{"user_id": user.Id.String()})
	publishEvent(ctx, s.eventPublisher, s.logger, events.TypeUserRegistered, map[string]interface{}{
		"user_id": user.Id.String(),
		"email":   user.Email,
	})

	return res, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: normalizeEmail(req.Email)})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	res, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.TypeUserLogin, map[string]interface{}{
		"user_id": user.Id.String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})

	return res, nil
}

func (s *authService) Authenticate(ctx context.Context, rawToken string) (*entity.User, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	userId, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	res := toUserResponse(user)
	return &res, nil
}

func (s *authService) issue(user *entity.User) (*dto.TokenResponse, error) {
	signed, err := s.tokens.Issue(user.Id.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	}, nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	conditions := user.ExistingConditions
	if conditions == nil {
		conditions = []string{}
	}
	return dto.UserResponse{
		Id:                 user.Id,
		Email:              user.Email,
		FullName:           user.FullName,
		Age:                user.Age,
		ExistingConditions: conditions,
		CreatedAt:          user.CreatedAt,
	}
}
