package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"watch-party-backend/internal/database"
	internaljwt "watch-party-backend/internal/jwt"
	"watch-party-backend/internal/model"

	"github.com/google/uuid"
)

var (
	ErrValidation         = errors.New("auth: validation")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrEmailTaken         = errors.New("auth: email already registered")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

type RegisterParams struct {
	Email    string
	Password string
	Name     string
}

type AuthResult struct {
	User   model.UserItem
	Tokens internaljwt.TokenResponse
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)
	name := strings.TrimSpace(params.Name)

	if email == "" || password == "" || name == "" {
		return AuthResult{}, ErrValidation
	}

	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := internaljwt.HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}

	user := model.UserItem{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         "viewer",
		Status:       "active",
		PasswordHash: hash,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return AuthResult{}, err
	}

	return s.issueTokens(user)
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrValidation
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if !internaljwt.CheckPassword(user.PasswordHash, password) {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *Service) issueTokens(user model.UserItem) (AuthResult, error) {
	role := internaljwt.RoleUser
	if user.Role == "admin" {
		role = internaljwt.RoleAdmin
	}

	token, err := internaljwt.CreateToken(internaljwt.User{
		Id:    user.UserID,
		Email: user.Email,
	}, role, 0)
	if err != nil {
		return AuthResult{}, err
	}

	user.PasswordHash = ""
	return AuthResult{
		User:   user,
		Tokens: internaljwt.TokenResponse{AccessToken: token},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
