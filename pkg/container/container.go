package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	zlog "github.com/rs/zerolog/log"

	"aguacates-backend/internal/config"
	cartadapters "aguacates-backend/internal/domains/cart/adapters"
	cartengine "aguacates-backend/internal/domains/cart/engine"
	carthandler "aguacates-backend/internal/domains/cart/handler"
	cartservice "aguacates-backend/internal/domains/cart/service"
	cartstore "aguacates-backend/internal/domains/cart/store"
	cataloghandler "aguacates-backend/internal/domains/catalog/handler"
	catalogrepo "aguacates-backend/internal/domains/catalog/repository"
	catalogservice "aguacates-backend/internal/domains/catalog/service"
	couponhandler "aguacates-backend/internal/domains/coupon/handler"
	couponrepo "aguacates-backend/internal/domains/coupon/repository"
	couponservice "aguacates-backend/internal/domains/coupon/service"
	orderhandler "aguacates-backend/internal/domains/order/handler"
	orderrepo "aguacates-backend/internal/domains/order/repository"
	orderservice "aguacates-backend/internal/domains/order/service"
	shippinghandler "aguacates-backend/internal/domains/shipping/handler"
	shippingrepo "aguacates-backend/internal/domains/shipping/repository"
	shippingservice "aguacates-backend/internal/domains/shipping/service"
	infraCache "aguacates-backend/internal/infrastructure/cache"
	"aguacates-backend/internal/infrastructure/database"
	"aguacates-backend/internal/infrastructure/whatsapp"
	"aguacates-backend/pkg/cache"
)

// Container holds the application's dependency graph. Everything in it is
// a singleton built once at startup; handlers at the top, infrastructure
// at the bottom.
type Container struct {
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	AsynqClient *asynq.Client
	WhatsApp    *whatsapp.Builder

	CatalogRepo  catalogrepo.RepositoryInterface
	ShippingRepo shippingrepo.RepositoryInterface
	CouponRepo   couponrepo.RepositoryInterface
	OrderRepo    orderrepo.RepositoryInterface
	CartStore    cartstore.Store

	CatalogService  catalogservice.ServiceInterface
	ShippingService shippingservice.ServiceInterface
	CouponService   couponservice.ServiceInterface
	CartEngine      *cartengine.Engine
	CartService     cartservice.ServiceInterface
	OrderService    orderservice.ServiceInterface

	CatalogHandler  *cataloghandler.Handler
	ShippingHandler *shippinghandler.Handler
	CouponHandler   *couponhandler.Handler
	CartHandler     *carthandler.Handler
	OrderHandler    *orderhandler.Handler
}

// NewContainer builds the full dependency graph. Initialization order
// matters: config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(&database.DBConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.WhatsApp = whatsapp.NewBuilder(cfg.WhatsApp.Phone, cfg.WhatsApp.StoreName)

	// Repositories
	c.CatalogRepo = catalogrepo.NewPostgresRepository(db.Pool)
	c.ShippingRepo = shippingrepo.NewPostgresRepository(db.Pool)
	c.CouponRepo = couponrepo.NewPostgresRepository(db.Pool)
	c.OrderRepo = orderrepo.NewPostgresRepository(db.Pool)
	c.CartStore = cartstore.NewRedisStore(c.Cache, time.Duration(cfg.Cart.TTLDays)*24*time.Hour)

	// Services
	c.CatalogService = catalogservice.NewCatalogService(c.CatalogRepo, c.Cache)
	c.ShippingService = shippingservice.NewShippingService(c.ShippingRepo, cfg.Shipping)
	c.CouponService = couponservice.NewCouponService(c.CouponRepo)

	quoter := cartadapters.NewHTTPQuoter(cfg.Cart.ShippingURL, 5*time.Second)
	validator := cartadapters.NewLocalCouponValidator(c.CouponService)
	c.CartEngine = cartengine.NewEngine(quoter, validator, cartengine.Config{
		DefaultCost:     cfg.Shipping.DefaultCost,
		FreeShippingMin: cfg.Shipping.FreeShippingMin,
		DefaultDays:     cfg.Shipping.DefaultDays,
		FreeDays:        cfg.Shipping.FreeDays,
	}, zlog.Logger)

	c.CartService = cartservice.NewCartService(c.CartStore, c.CartEngine, c.CatalogService)
	c.OrderService = orderservice.NewOrderService(c.DB, c.OrderRepo, c.CartService, c.CouponService, c.AsynqClient)

	// Handlers
	c.CatalogHandler = cataloghandler.NewHandler(c.CatalogService)
	c.ShippingHandler = shippinghandler.NewHandler(c.ShippingService)
	c.CouponHandler = couponhandler.NewHandler(c.CouponService)
	c.CartHandler = carthandler.NewHandler(c.CartService)
	c.OrderHandler = orderhandler.NewHandler(c.OrderService)

	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[Container] Failed to close asynq client: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
