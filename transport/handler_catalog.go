package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
	utilsContext "github.com/tanchung/sport-store/utils/context"
	"github.com/tanchung/sport-store/utils/errors"
	validatorx "github.com/tanchung/sport-store/utils/validator"
)

// ListProducts handler
// @Summary List products
// @Tags Products
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param keyword query string false "Search keyword"
// @Success 200 {object} model.ProductListResponse
// @Router /products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := &model.ProductListParams{
		Keyword: q.Get("keyword"),
		SortBy:  q.Get("sortBy"),
	}
	params.Page, _ = strconv.Atoi(q.Get("page"))
	params.PageSize, _ = strconv.Atoi(q.Get("size"))
	params.CategoryID, _ = strconv.ParseUint(q.Get("categoryId"), 10, 64)

	res, err := s.ProductRepo.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ProductRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	cart, err := s.CartRepo.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, cart)
}

func (s *RestHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	cart, err := s.CartRepo.AddItem(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, cart)
}

func (s *RestHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	itemID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	cart, err := s.CartRepo.UpdateItem(r.Context(), userID, itemID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, cart)
}

func (s *RestHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	itemID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	cart, err := s.CartRepo.RemoveItem(r.Context(), userID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, cart)
}
