package service

import (
	"context"

	"trastienda/internal/apperror"
	"trastienda/internal/repository"
	"trastienda/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// UserInfo is what a successful login returns. No token issuance here;
// session handling belongs to whatever surface embeds this core.
type UserInfo struct {
	ID       string
	Username string
	Role     string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*UserInfo, error)
}

type authService struct {
	repo repository.UserRepository
	log  *logger.Logger
}

func NewAuthService(repo repository.UserRepository, log *logger.Logger) AuthService {
	return &authService{repo: repo, log: log}
}

// Login checks the password against the stored bcrypt hash. The same error
// comes back for unknown users, inactive users, and wrong passwords.
func (s *authService) Login(ctx context.Context, username, password string) (*UserInfo, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil || !user.Active {
		return nil, apperror.Validation("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn().Str("username", username).Msg("failed login attempt")
		return nil, apperror.Validation("invalid credentials")
	}

	return &UserInfo{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
