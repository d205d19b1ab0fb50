package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tanchung/sport-store/application/orderstate"
	paymentapp "github.com/tanchung/sport-store/application/payment"
	userapp "github.com/tanchung/sport-store/application/user"
	cartRepo "github.com/tanchung/sport-store/repository/cart"
	orderRepo "github.com/tanchung/sport-store/repository/order"
	productRepo "github.com/tanchung/sport-store/repository/product"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp     userapp.UserApp
	PaymentApp  paymentapp.PaymentApp
	Orders      *orderstate.Registry
	OrderRepo   orderRepo.OrderGateway
	ProductRepo productRepo.ProductGateway
	CartRepo    cartRepo.CartGateway
}

func NewTransport(rh *RestHandler) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	mux.HandleFunc("/products/{id}", rh.GetProduct).Methods(http.MethodGet)
	mux.HandleFunc("/payment/return", rh.PaymentReturn).Methods(http.MethodGet)

	// Protected routes
	mux.HandleFunc("/logout", rh.Logout).Methods(http.MethodPost)
	mux.HandleFunc("/profile", rh.GetProfile).Methods(http.MethodGet)
	mux.HandleFunc("/profile", rh.UpdateProfile).Methods(http.MethodPut)

	mux.HandleFunc("/cart", rh.GetCart).Methods(http.MethodGet)
	mux.HandleFunc("/cart/items", rh.AddCartItem).Methods(http.MethodPost)
	mux.HandleFunc("/cart/items/{id}", rh.UpdateCartItem).Methods(http.MethodPut)
	mux.HandleFunc("/cart/items/{id}", rh.RemoveCartItem).Methods(http.MethodDelete)

	mux.HandleFunc("/orders/buckets", rh.RefreshBuckets).Methods(http.MethodPost)
	mux.HandleFunc("/orders/buckets/{status}", rh.GetBucket).Methods(http.MethodGet)
	mux.HandleFunc("/orders/buckets/{status}/filters", rh.UpdateBucketFilters).Methods(http.MethodPost)
	mux.HandleFunc("/orders/buckets/{status}/page", rh.ChangeBucketPage).Methods(http.MethodPost)
	mux.HandleFunc("/orders/buckets/{status}/page-size", rh.ChangeBucketPageSize).Methods(http.MethodPost)
	mux.HandleFunc("/orders/buckets/{status}/search", rh.SearchBucket).Methods(http.MethodPost)
	mux.HandleFunc("/orders/buckets/{status}/search", rh.ClearBucketSearch).Methods(http.MethodDelete)
	mux.HandleFunc("/orders/buckets/{status}/search/page", rh.ChangeBucketSearchPage).Methods(http.MethodPost)
	mux.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}/cancel", rh.CancelOrder).Methods(http.MethodPost)

	mux.HandleFunc("/checkout", rh.Checkout).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(rh.UserApp))

	return mux
}
