package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	userapp "github.com/tanchung/sport-store/application/user"
	"github.com/tanchung/sport-store/cmd/config"
	"github.com/tanchung/sport-store/constant"
	redismocks "github.com/tanchung/sport-store/mocks/repository/redis"
	usermocks "github.com/tanchung/sport-store/mocks/repository/user"
	"github.com/tanchung/sport-store/model"
	utilsContext "github.com/tanchung/sport-store/utils/context"
	"github.com/tanchung/sport-store/utils/errors"
)

func authConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTExpiration = time.Hour
	cfg.Auth.SessionExpTime = 24 * time.Hour
	return cfg
}

func TestUserApp_Login_StoresSessionAndIssuesValidJWT(t *testing.T) {
	userRepo := usermocks.NewUserGateway(t)
	redisRepo := redismocks.NewRepository(t)
	cfg := authConfig()

	userRepo.On("Login", mock.Anything, mock.Anything).
		Return(&model.BackendUser{ID: 7, Name: "Chung", Email: "chung@test.local"},
			&model.BackendTokenPair{AccessToken: "acc-1", RefreshToken: "ref-1"}, nil).Once()

	var storedID string
	var stored *model.Session
	redisRepo.On("SetSession", mock.Anything, mock.Anything, mock.Anything, cfg.Auth.SessionExpTime).
		Run(func(args mock.Arguments) {
			storedID = args.String(1)
			stored = args.Get(2).(*model.Session)
		}).Return(nil).Once()

	app := userapp.NewUserApp(cfg, userRepo, redisRepo)
	res, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "chung@test.local", Password: "secret12"})
	require.NoError(t, err)
	assert.Equal(t, "Chung", res.Name)
	require.NotEmpty(t, res.Token)

	require.NotNil(t, stored)
	assert.Equal(t, uint64(7), stored.UserID)
	assert.Equal(t, "acc-1", stored.AccessToken)
	assert.Equal(t, "ref-1", stored.RefreshToken)

	// the issued JWT must resolve back to the stored session
	redisRepo.On("GetSession", mock.Anything, storedID).Return(stored, nil).Once()
	userID, sessionID, err := app.ValidateToken(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), userID)
	assert.Equal(t, storedID, sessionID)
}

func TestUserApp_ValidateToken_RejectsSessionUserMismatch(t *testing.T) {
	userRepo := usermocks.NewUserGateway(t)
	redisRepo := redismocks.NewRepository(t)
	cfg := authConfig()

	userRepo.On("Login", mock.Anything, mock.Anything).
		Return(&model.BackendUser{ID: 7}, &model.BackendTokenPair{AccessToken: "acc-1"}, nil).Once()
	redisRepo.On("SetSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	app := userapp.NewUserApp(cfg, userRepo, redisRepo)
	res, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "x", Password: "y"})
	require.NoError(t, err)

	redisRepo.On("GetSession", mock.Anything, mock.Anything).
		Return(&model.Session{UserID: 999, AccessToken: "acc-1"}, nil).Once()
	_, _, err = app.ValidateToken(context.Background(), res.Token)
	assert.Error(t, err)
}

func TestUserApp_ValidateToken_RejectsForgedToken(t *testing.T) {
	app := userapp.NewUserApp(authConfig(), usermocks.NewUserGateway(t), redismocks.NewRepository(t))
	_, _, err := app.ValidateToken(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

func TestUserApp_Refresh_UpdatesSession(t *testing.T) {
	userRepo := usermocks.NewUserGateway(t)
	redisRepo := redismocks.NewRepository(t)
	cfg := authConfig()

	redisRepo.On("GetSession", mock.Anything, "sess-1").
		Return(&model.Session{UserID: 7, AccessToken: "stale", RefreshToken: "ref-1"}, nil).Once()
	userRepo.On("RefreshToken", mock.Anything, "ref-1").
		Return(&model.BackendTokenPair{AccessToken: "fresh", RefreshToken: "ref-2"}, nil).Once()
	redisRepo.On("SetSession", mock.Anything, "sess-1", mock.MatchedBy(func(s *model.Session) bool {
		return s.AccessToken == "fresh" && s.RefreshToken == "ref-2"
	}), cfg.Auth.SessionExpTime).Return(nil).Once()

	app := userapp.NewUserApp(cfg, userRepo, redisRepo)
	ctx := utilsContext.WithSession(context.Background(), 7, "sess-1")
	token, err := app.Refresh(ctx, "stale")
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
}

func TestUserApp_Refresh_SkipsBackendWhenAlreadyRefreshed(t *testing.T) {
	userRepo := usermocks.NewUserGateway(t)
	redisRepo := redismocks.NewRepository(t)

	// the session already carries a token newer than the caller's stale one
	redisRepo.On("GetSession", mock.Anything, "sess-1").
		Return(&model.Session{UserID: 7, AccessToken: "fresh", RefreshToken: "ref-1"}, nil).Once()

	app := userapp.NewUserApp(authConfig(), userRepo, redisRepo)
	ctx := utilsContext.WithSession(context.Background(), 7, "sess-1")
	token, err := app.Refresh(ctx, "stale")
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
	userRepo.AssertNotCalled(t, "RefreshToken", mock.Anything, mock.Anything)
}

func TestUserApp_Refresh_TearsDownSessionOnRejection(t *testing.T) {
	userRepo := usermocks.NewUserGateway(t)
	redisRepo := redismocks.NewRepository(t)

	redisRepo.On("GetSession", mock.Anything, "sess-1").
		Return(&model.Session{UserID: 7, AccessToken: "stale", RefreshToken: "ref-1"}, nil).Once()
	userRepo.On("RefreshToken", mock.Anything, "ref-1").
		Return(nil, errors.SetCustomError(constant.ErrUnauthorize)).Once()
	redisRepo.On("DeleteSession", mock.Anything, "sess-1").Return(nil).Once()

	app := userapp.NewUserApp(authConfig(), userRepo, redisRepo)
	ctx := utilsContext.WithSession(context.Background(), 7, "sess-1")
	_, err := app.Refresh(ctx, "stale")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, constant.ErrSessionExpired))
}

func TestUserApp_Token_ExpiredSessionIsTerminal(t *testing.T) {
	redisRepo := redismocks.NewRepository(t)
	redisRepo.On("GetSession", mock.Anything, "sess-1").Return(nil, nil).Once()

	app := userapp.NewUserApp(authConfig(), usermocks.NewUserGateway(t), redisRepo)
	ctx := utilsContext.WithSession(context.Background(), 7, "sess-1")
	_, err := app.Token(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, constant.ErrSessionExpired))
}
