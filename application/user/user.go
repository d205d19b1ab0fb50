package user

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tanchung/sport-store/cmd/config"
	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
	redisrepo "github.com/tanchung/sport-store/repository/redis"
	userrepo "github.com/tanchung/sport-store/repository/user"
	utilsContext "github.com/tanchung/sport-store/utils/context"
	"github.com/tanchung/sport-store/utils/errors"
	"github.com/tanchung/sport-store/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// UserApp owns the session lifecycle: the backend authenticates users and
// issues a token pair; this side caches the pair per session and puts a
// local JWT in front of it. It doubles as the backend client's TokenSource.
type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context) error
	ValidateToken(ctx context.Context, tokenString string) (uint64, string, error)
	GetProfile(ctx context.Context) (*model.BackendUser, error)
	UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) (*model.BackendUser, error)

	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context, stale string) (string, error)
}

type UserAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserGateway
	redisRepo redisrepo.Repository
	refresh   singleflight.Group
}

func NewUserApp(config *config.Config, userRepo userrepo.UserGateway, redisRepo redisrepo.Repository) UserApp {
	return &UserAppImpl{
		config:    config,
		userRepo:  userRepo,
		redisRepo: redisRepo,
	}
}

func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	user, err := s.userRepo.Register(ctx, req)
	if err != nil {
		logger.Error("[Register] err userRepo.Register", zap.String("error", err.Error()))
		return nil, err
	}
	return &model.RegisterResponse{
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, tokens, err := s.userRepo.Login(ctx, req)
	if err != nil {
		logger.Error("[Login] err userRepo.Login", zap.String("error", err.Error()))
		return nil, err
	}

	token, jti, err := s.generateJWT(user.ID)
	if err != nil {
		logger.Error("[Login] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	sess := &model.Session{
		UserID:       user.ID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	if err := s.redisRepo.SetSession(ctx, jti, sess, s.config.Auth.SessionExpTime); err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}

func (s *UserAppImpl) Logout(ctx context.Context) error {
	sessionID, ok := utilsContext.GetSessionID(ctx)
	if !ok {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	return s.redisRepo.DeleteSession(ctx, sessionID)
}

// ValidateToken checks the local JWT and resolves its session, returning
// the user id and session id.
func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (uint64, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, "", fmt.Errorf("invalid claims")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid user id in token")
	}

	jti := claims.ID
	if jti == "" {
		return 0, "", fmt.Errorf("token missing jti")
	}

	sess, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil || sess == nil {
		return 0, "", fmt.Errorf("invalid or expired session")
	}
	if sess.UserID != userID {
		return 0, "", fmt.Errorf("token does not match user session")
	}

	return userID, jti, nil
}

func (s *UserAppImpl) GetProfile(ctx context.Context) (*model.BackendUser, error) {
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	return s.userRepo.GetProfile(ctx, userID)
}

func (s *UserAppImpl) UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) (*model.BackendUser, error) {
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	return s.userRepo.UpdateProfile(ctx, userID, req)
}

// Token returns the backend access token for the session in ctx.
func (s *UserAppImpl) Token(ctx context.Context) (string, error) {
	sessionID, ok := utilsContext.GetSessionID(ctx)
	if !ok {
		return "", errors.SetCustomError(constant.ErrUnauthorize)
	}
	sess, err := s.redisRepo.GetSession(ctx, sessionID)
	if err != nil || sess == nil {
		return "", errors.SetCustomError(constant.ErrSessionExpired)
	}
	return sess.AccessToken, nil
}

// Refresh exchanges the session's refresh token for a new access token.
// Concurrent 401s on one session collapse into a single refresh call; a
// failed refresh tears the session down.
func (s *UserAppImpl) Refresh(ctx context.Context, stale string) (string, error) {
	sessionID, ok := utilsContext.GetSessionID(ctx)
	if !ok {
		return "", errors.SetCustomError(constant.ErrUnauthorize)
	}

	v, err, _ := s.refresh.Do(sessionID, func() (interface{}, error) {
		sess, err := s.redisRepo.GetSession(ctx, sessionID)
		if err != nil || sess == nil {
			return "", errors.SetCustomError(constant.ErrSessionExpired)
		}
		// Another caller may have refreshed while this one queued.
		if sess.AccessToken != stale {
			return sess.AccessToken, nil
		}

		tokens, err := s.userRepo.RefreshToken(ctx, sess.RefreshToken)
		if err != nil {
			logger.Warn("[Refresh] backend refresh rejected, tearing session down", zap.String("session_id", sessionID))
			_ = s.redisRepo.DeleteSession(ctx, sessionID)
			return "", errors.SetCustomError(constant.ErrSessionExpired)
		}

		sess.AccessToken = tokens.AccessToken
		if tokens.RefreshToken != "" {
			sess.RefreshToken = tokens.RefreshToken
		}
		if err := s.redisRepo.SetSession(ctx, sessionID, sess, s.config.Auth.SessionExpTime); err != nil {
			logger.Error("[Refresh] err SetSession", zap.String("error", err.Error()))
		}
		return sess.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// generateJWT creates the local session JWT for the user
func (s *UserAppImpl) generateJWT(userID uint64) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}
