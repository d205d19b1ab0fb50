package model

import "github.com/shopspring/decimal"

type ProductListItem struct {
	ID         uint64          `json:"id"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand,omitempty"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"image_url,omitempty"`
	Rating     float64         `json:"rating"`
	NumSold    int64           `json:"num_sold"`
	CategoryID uint64          `json:"category_id,omitempty"`
}

type ProductDetail struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURLs   []string        `json:"image_urls,omitempty"`
	Rating      float64         `json:"rating"`
	Reviews     []ProductReview `json:"reviews,omitempty"`
	CategoryID  uint64          `json:"category_id,omitempty"`
	InStock     bool            `json:"in_stock"`
}

type ProductReview struct {
	ID        uint64  `json:"id"`
	UserName  string  `json:"user_name"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// ProductListParams mirrors the storefront's product browsing filters.
type ProductListParams struct {
	Keyword    string `json:"keyword,omitempty"`
	CategoryID uint64 `json:"category_id,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

type ProductListResponse struct {
	Items      []ProductListItem `json:"items"`
	Pagination Pagination        `json:"pagination"`
}
