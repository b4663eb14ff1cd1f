// Package router contains routing setup for the HTTP delivery.
package router

import (
	"plateful/internal/delivery/http/middleware"
	"plateful/internal/delivery/http/router/handler"
	"plateful/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	ProfileHandler      *handler.ProfileHandler
	RecipeHandler       *handler.RecipeHandler
	GroceryHandler      *handler.GroceryHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
	Collector           *metrics.Collector
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	recipeHandler       *handler.RecipeHandler
	groceryHandler      *handler.GroceryHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
	collector           *metrics.Collector
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		profileHandler:      params.ProfileHandler,
		recipeHandler:       params.RecipeHandler,
		groceryHandler:      params.GroceryHandler,
		authMiddleware:      params.AuthMiddleware,
		rateLimitMiddleware: params.RateLimitMiddleware,
		collector:           params.Collector,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(r.collector.Handler()))

	// Auth routes. The whole group is rate limited to slow down credential
	// guessing.
	authGroup := e.Group("/auth")
	authGroup.Use(r.rateLimitMiddleware.LimitAuth)
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/google/callback", r.authHandler.GoogleCallback)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Profile routes require authentication.
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.PUT("", r.profileHandler.UpdateProfile)
		profileGroup.POST("/avatar", r.profileHandler.SetAvatar)
	}

	// Recipe reads are public; mutations and generation require authentication.
	recipeGroup := e.Group("/recipes")
	{
		recipeGroup.GET("", r.recipeHandler.List)
		recipeGroup.GET("/:id", r.recipeHandler.Get)
		recipeGroup.GET("/:id/qrcode", r.recipeHandler.ShareQR)
		recipeGroup.POST("", r.recipeHandler.Create, r.authMiddleware.Authenticate)
		recipeGroup.PUT("/:id", r.recipeHandler.Update, r.authMiddleware.Authenticate)
		recipeGroup.DELETE("/:id", r.recipeHandler.Delete, r.authMiddleware.Authenticate)
		recipeGroup.POST("/generate", r.recipeHandler.Generate, r.authMiddleware.Authenticate)
	}

	// Grocery routes.
	e.GET("/ingredients", r.groceryHandler.SearchIngredients)
	e.GET("/stores/nearby", r.groceryHandler.NearbyStores)
	e.POST("/shopping-list", r.groceryHandler.BuildShoppingList, r.authMiddleware.Authenticate)
}
