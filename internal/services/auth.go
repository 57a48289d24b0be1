package services

import (
	"context"
	"net/http"

	"github.com/juju/errors"
	"github.com/rs/zerolog"

	"github.com/monocle-dev/opsdesk/internal/auth"
	"github.com/monocle-dev/opsdesk/internal/repository"
	"github.com/monocle-dev/opsdesk/internal/types"
)

const invalidCredentials = "Invalid username or password"

type AuthService struct {
	users  *repository.Users
	tokens *auth.Tokens
	logger zerolog.Logger
}

func NewAuthService(users *repository.Users, tokens *auth.Tokens, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// Login answers 401 for an unknown user and a wrong password alike.
func (s *AuthService) Login(ctx context.Context, req types.LoginRequest) types.ServiceResponse {
	user, err := s.users.FindCredentials(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return types.Failure(invalidCredentials, nil, http.StatusUnauthorized)
		}
		s.logger.Error().Err(err).Msg("failed to look up credentials")
		return types.Failure("An error occurred while logging in", nil, http.StatusInternalServerError)
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		s.logger.Debug().Str("username", req.Username).Msg("password mismatch")
		return types.Failure(invalidCredentials, nil, http.StatusUnauthorized)
	}

	token, expiresAt, err := s.tokens.Generate(*user)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate token")
		return types.Failure("An error occurred while logging in", nil, http.StatusInternalServerError)
	}

	return types.Success("Login success", types.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: types.UserInfo{
			UserID:   user.UserID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, http.StatusOK)
}
