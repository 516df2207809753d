package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/dto"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
	"github.com/ndolodev/bureau_change_app/internal/utils"
)

// authService authenticates operators against stored bcrypt hashes and
// issues JWT access tokens.
type authService struct {
	operatorRepo portsrepo.OperatorRepositoryFacade
	jwtSecret    string
	jwtExpiry    time.Duration
	jwtIssuer    string
}

// NewAuthService creates a new AuthSvcFacade.
func NewAuthService(operatorRepo portsrepo.OperatorRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		operatorRepo: operatorRepo,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
		jwtIssuer:    jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login implements portssvc.AuthSvcFacade. Unknown usernames and wrong
// passwords return the same ErrUnauthorized so the response does not leak
// which part failed.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	operator, err := s.operatorRepo.FindOperatorByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		logger.Error("Failed to look up operator", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up operator: %w", err)
	}
	if !operator.IsActive {
		logger.Warn("Login attempt for inactive operator", slog.String("operator_id", operator.OperatorID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(req.Password, operator.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.GenerateJWT(operator.OperatorID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("Operator logged in", slog.String("operator_id", operator.OperatorID))
	return &dto.LoginResponse{
		Token:      token,
		ExpiresAt:  expiresAt,
		OperatorID: operator.OperatorID,
		Name:       operator.Name,
	}, nil
}
