package product

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tanchung/sport-store/model"
	"github.com/tanchung/sport-store/repository/backend"
)

type ProductGateway interface {
	List(ctx context.Context, params *model.ProductListParams) (*model.ProductListResponse, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error)
}

type Gateway struct {
	client *backend.Client
}

func NewProductGateway(client *backend.Client) ProductGateway {
	return &Gateway{client: client}
}

func (g *Gateway) List(ctx context.Context, params *model.ProductListParams) (*model.ProductListResponse, error) {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	size := params.PageSize
	if size <= 0 {
		size = 12
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page-1))
	q.Set("size", strconv.Itoa(size))
	if params.Keyword != "" {
		q.Set("keyword", params.Keyword)
	}
	if params.CategoryID != 0 {
		q.Set("categoryId", strconv.FormatUint(params.CategoryID, 10))
	}
	if params.SortBy != "" {
		q.Set("sortBy", params.SortBy)
	}

	var raw struct {
		Content []model.ProductListItem `json:"content"`
		Page    struct {
			Size          int   `json:"size"`
			Number        int   `json:"number"`
			TotalElements int64 `json:"totalElements"`
			TotalPages    int   `json:"totalPages"`
		} `json:"page"`
	}
	// Product browsing is public; no bearer token is sent.
	if err := g.client.Get(ctx, "/products", q, &raw, backend.Public()); err != nil {
		return nil, err
	}

	return &model.ProductListResponse{
		Items: raw.Content,
		Pagination: model.Pagination{
			CurrentPage: raw.Page.Number + 1,
			PageSize:    raw.Page.Size,
			TotalItems:  raw.Page.TotalElements,
			TotalPages:  raw.Page.TotalPages,
		},
	}, nil
}

func (g *Gateway) GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	var detail model.ProductDetail
	if err := g.client.Get(ctx, fmt.Sprintf("/products/%d", id), nil, &detail, backend.Public()); err != nil {
		return nil, err
	}
	return &detail, nil
}
