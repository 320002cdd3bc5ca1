package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storeadmin/internal/admin"
	"storeadmin/internal/handlers"
	"storeadmin/internal/middleware"
)

type Deps struct {
	Catalog        *admin.Catalog
	Orders         *admin.Orders
	Users          handlers.UserFinder
	JWTSecret      string
	AccessTokenTTL time.Duration
	LoginLimiter   *middleware.RateLimiter
	Metrics        *middleware.Metrics
	Ping           handlers.PingFunc
	// Gatherer backs /metrics. The route is not registered when it is nil.
	Gatherer prometheus.Gatherer
}

func New(d Deps) *gin.Engine {
	r := gin.New()

	// Recovery sits inside the logger and metrics so panics are logged and
	// counted as 500s.
	r.Use(middleware.RequestLogger())
	r.Use(d.Metrics.Handler())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	r.GET("/health", handlers.Health(d.Ping))
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	auth := r.Group("/auth")
	if d.LoginLimiter != nil {
		auth.Use(d.LoginLimiter.Handler())
	}
	auth.POST("/login", handlers.Login(d.Users, d.JWTSecret, d.AccessTokenTTL))

	r.GET("/products", handlers.GetProducts(d.Catalog))
	r.GET("/product", handlers.GetProduct(d.Catalog))
	r.GET("/orders", middleware.AuthGuard(d.JWTSecret), handlers.GetMyOrders(d.Orders))

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AuthGuard(d.JWTSecret))
	{
		adminGroup.GET("/", handlers.GetAllProducts(d.Catalog))
		adminGroup.GET("/product/:productId", handlers.GetProductByID(d.Catalog))
		adminGroup.POST("/add-product", handlers.PostProduct(d.Catalog))
		adminGroup.POST("/updateOrderStatus", handlers.PostOrderStatus(d.Orders))
		adminGroup.GET("/orders", handlers.GetAllOrders(d.Orders))
	}

	return r
}
