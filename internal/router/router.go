package router

import (
	"net/http"
	"time"

	"travel_booking/internal/handler"
	"travel_booking/internal/metrics"
	"travel_booking/internal/middleware"
	"travel_booking/internal/repository"
	"travel_booking/internal/service"
	"travel_booking/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps is everything the HTTP layer needs from the outside.
type Deps struct {
	Store        *repository.Store
	JWT          *utils.JWTUtil
	CatalogCache service.CatalogCache
	Logger       zerolog.Logger

	AllowedOrigins    []string
	AuthRatePerMinute int
	AuthRateBurst     int
	InitialAdminEmail string
}

// Setup wires services, handlers and middleware into a gin engine.
func Setup(deps Deps) *gin.Engine {
	// --- Services ---
	authService := service.NewAuthService(deps.Store.Users, deps.JWT, deps.InitialAdminEmail)
	listingService := service.NewListingService(deps.Store.Listings, deps.CatalogCache)
	packageService := service.NewPackageService(deps.Store.Packages, deps.CatalogCache)
	orderService := service.NewOrderService(deps.Store.Orders)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	listingHandler := handler.NewListingHandler(listingService)
	packageHandler := handler.NewPackageHandler(packageService)
	orderHandler := handler.NewOrderHandler(orderService)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(metrics.GinMiddleware())
	r.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	// --- Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(deps.JWT)
	adminRoleMW := middleware.AdminMiddleware()
	authLimiter := middleware.NewRateLimiter(deps.AuthRatePerMinute, deps.AuthRateBurst)

	// --- Public routes ---
	auth := r.Group("/", authLimiter.Middleware())
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	r.GET("/getListings", listingHandler.GetListings)
	r.GET("/getListing/:id", listingHandler.GetListing)
	r.GET("/getPackages", packageHandler.GetPackages)
	r.GET("/getPackage/:id", packageHandler.GetPackage)

	// --- Authenticated routes ---
	authed := r.Group("/", jwtAuthMW)
	{
		authed.POST("/orders", orderHandler.CreateOrder)
		authed.GET("/orders", orderHandler.GetMyOrders)
	}

	// Token gate always runs before the admin gate so a missing token is a 401.
	adminOnly := r.Group("/", jwtAuthMW, adminRoleMW)
	{
		adminOnly.POST("/addListing", listingHandler.AddListing)
		adminOnly.DELETE("/deleteListing/:id", listingHandler.DeleteListing)
		adminOnly.POST("/addPackage", packageHandler.AddPackage)
		adminOnly.DELETE("/deletePackage/:id", packageHandler.DeletePackage)
		adminOnly.PATCH("/orders/:id/status", orderHandler.UpdateOrderStatus)
	}

	// --- Operational ---
	r.GET("/health", handler.Health(deps.Store))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
