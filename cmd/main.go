package main

import (
	"net/http"

	orderstateapp "github.com/tanchung/sport-store/application/orderstate"
	paymentapp "github.com/tanchung/sport-store/application/payment"
	userapp "github.com/tanchung/sport-store/application/user"
	"github.com/tanchung/sport-store/cmd/config"
	redisclient "github.com/tanchung/sport-store/cmd/redis"
	_ "github.com/tanchung/sport-store/docs"
	"github.com/tanchung/sport-store/repository/backend"
	cartRepo "github.com/tanchung/sport-store/repository/cart"
	orderRepo "github.com/tanchung/sport-store/repository/order"
	paymentRepo "github.com/tanchung/sport-store/repository/payment"
	productRepo "github.com/tanchung/sport-store/repository/product"
	redisRepo "github.com/tanchung/sport-store/repository/redis"
	userRepo "github.com/tanchung/sport-store/repository/user"
	"github.com/tanchung/sport-store/thirdparty/rabbitmq"
	"github.com/tanchung/sport-store/transport"
	"github.com/tanchung/sport-store/utils/logger"
	"go.uber.org/zap"
)

// @title SPORT-STORE API
// @version 1.0
// @description Sport-Store storefront API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Event publisher; the storefront runs without it if the broker is down
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Backend HTTP client and gateway repositories
	client := backend.NewClient(cfg)
	RedisRepo := redisRepo.NewRepository()
	UserRepo := userRepo.NewUserGateway(client)
	OrderRepo := orderRepo.NewOrderGateway(client)
	PaymentRepo := paymentRepo.NewPaymentGateway(client)
	ProductRepo := productRepo.NewProductGateway(client)
	CartRepo := cartRepo.NewCartGateway(client)

	// Application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	client.SetTokenSource(UserApp)

	PaymentApp := paymentapp.NewPaymentApp(cfg, OrderRepo, PaymentRepo, RedisRepo, publisher)
	Orders := orderstateapp.NewRegistry(OrderRepo, publisher)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		UserApp:     UserApp,
		PaymentApp:  PaymentApp,
		Orders:      Orders,
		OrderRepo:   OrderRepo,
		ProductRepo: ProductRepo,
		CartRepo:    CartRepo,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
