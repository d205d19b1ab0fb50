package user

import (
	"context"

	"github.com/tanchung/sport-store/model"
	"github.com/tanchung/sport-store/repository/backend"
)

// UserGateway forwards credential and profile operations to the backend,
// which owns all user records. Login and refresh are public calls; the
// token pair they return is what every authenticated call rides on.
type UserGateway interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.BackendUser, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.BackendUser, *model.BackendTokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*model.BackendTokenPair, error)
	GetProfile(ctx context.Context, userID uint64) (*model.BackendUser, error)
	UpdateProfile(ctx context.Context, userID uint64, req *model.UpdateProfileRequest) (*model.BackendUser, error)
}

type Gateway struct {
	client *backend.Client
}

func NewUserGateway(client *backend.Client) UserGateway {
	return &Gateway{client: client}
}

type loginResult struct {
	User         model.BackendUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

func (g *Gateway) Register(ctx context.Context, req *model.RegisterRequest) (*model.BackendUser, error) {
	var user model.BackendUser
	if err := g.client.Post(ctx, "/auth/register", req, &user, backend.Public()); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *Gateway) Login(ctx context.Context, req *model.LoginRequest) (*model.BackendUser, *model.BackendTokenPair, error) {
	var out loginResult
	if err := g.client.Post(ctx, "/auth/login", req, &out, backend.Public()); err != nil {
		return nil, nil, err
	}
	return &out.User, &model.BackendTokenPair{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}, nil
}

func (g *Gateway) RefreshToken(ctx context.Context, refreshToken string) (*model.BackendTokenPair, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var out model.BackendTokenPair
	if err := g.client.Post(ctx, "/auth/refresh", body, &out, backend.Public()); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) GetProfile(ctx context.Context, userID uint64) (*model.BackendUser, error) {
	var user model.BackendUser
	if err := g.client.Get(ctx, "/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *Gateway) UpdateProfile(ctx context.Context, userID uint64, req *model.UpdateProfileRequest) (*model.BackendUser, error) {
	var user model.BackendUser
	if err := g.client.Put(ctx, "/users/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
