package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"aguacates-backend/internal/shared/middleware"
	"aguacates-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Guest cart session cookie
	sessionConfig := middleware.DefaultCartSessionConfig(c.Config.Cart.SessionSecret)
	if c.Config.App.Environment == "development" {
		sessionConfig.CookieSecure = false
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCatalogRoutes(v1, c)
		setupShippingRoutes(v1, c)
		setupCouponRoutes(v1, c)
		setupCartRoutes(v1, c, sessionConfig)
		setupOrderRoutes(v1, c, sessionConfig)
	}

	return router
}

func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.CatalogHandler.ListProducts)
		products.GET("/:id", c.CatalogHandler.GetProduct)
		products.GET("/slug/:slug", c.CatalogHandler.GetProductBySlug)
		products.GET("/:id/variants", c.CatalogHandler.ListVariants)
	}
}

func setupShippingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	shipping := v1.Group("/shipping")
	{
		shipping.POST("/calculate", c.ShippingHandler.Calculate)
	}
}

func setupCouponRoutes(v1 *gin.RouterGroup, c *container.Container) {
	coupons := v1.Group("/coupons")
	{
		coupons.GET("/validate", c.CouponHandler.Validate)
	}
}

func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container, sessionConfig middleware.CartSessionConfig) {
	cart := v1.Group("/cart", middleware.CartSession(sessionConfig))
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.GET("/totals", c.CartHandler.GetTotals)
		cart.DELETE("", c.CartHandler.ClearCart)

		cart.POST("/items", c.CartHandler.AddItem)
		cart.PUT("/items/:productID", c.CartHandler.UpdateQuantity)
		cart.DELETE("/items/:productID", c.CartHandler.RemoveItem)

		cart.POST("/coupon", c.CartHandler.ApplyCoupon)
		cart.DELETE("/coupon", c.CartHandler.RemoveCoupon)

		cart.POST("/shipping", c.CartHandler.CalculateShipping)
	}
}

func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container, sessionConfig middleware.CartSessionConfig) {
	orders := v1.Group("/orders", middleware.CartSession(sessionConfig))
	{
		orders.POST("/checkout", c.OrderHandler.Checkout)
		orders.GET("/:orderNumber", c.OrderHandler.GetByNumber)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   getEnvOr("APP_VERSION", "1.0.0"),
			"services":  gin.H{},
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		status := http.StatusOK
		if health["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}

func getEnvOr(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
