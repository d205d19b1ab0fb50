package cart

import (
	"context"
	"fmt"

	"github.com/tanchung/sport-store/model"
	"github.com/tanchung/sport-store/repository/backend"
)

type CartGateway interface {
	Get(ctx context.Context, userID uint64) (*model.Cart, error)
	AddItem(ctx context.Context, userID uint64, req *model.AddCartItemRequest) (*model.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID uint64, req *model.UpdateCartItemRequest) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID uint64) (*model.Cart, error)
}

type Gateway struct {
	client *backend.Client
}

func NewCartGateway(client *backend.Client) CartGateway {
	return &Gateway{client: client}
}

func (g *Gateway) Get(ctx context.Context, userID uint64) (*model.Cart, error) {
	var cart model.Cart
	if err := g.client.Get(ctx, fmt.Sprintf("/carts/%d", userID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (g *Gateway) AddItem(ctx context.Context, userID uint64, req *model.AddCartItemRequest) (*model.Cart, error) {
	var cart model.Cart
	if err := g.client.Post(ctx, fmt.Sprintf("/carts/%d/items", userID), req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (g *Gateway) UpdateItem(ctx context.Context, userID, itemID uint64, req *model.UpdateCartItemRequest) (*model.Cart, error) {
	var cart model.Cart
	if err := g.client.Put(ctx, fmt.Sprintf("/carts/%d/items/%d", userID, itemID), req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (g *Gateway) RemoveItem(ctx context.Context, userID, itemID uint64) (*model.Cart, error) {
	var cart model.Cart
	if err := g.client.Delete(ctx, fmt.Sprintf("/carts/%d/items/%d", userID, itemID), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
