package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/interface8/Prompt-8/internal/handlers"
  "github.com/interface8/Prompt-8/internal/middleware"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  UserHandler       *handlers.UserHandler
  PromptHandler     *handlers.PromptHandler
  CartHandler       *handlers.CartHandler
  PurchaseHandler   *handlers.PurchaseHandler
  LikeHandler       *handlers.LikeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)
  router.GET("/prompts", cfg.PromptHandler.List)
  router.GET("/prompts/:promptId", cfg.PromptHandler.Get)
  router.GET("/prompt-types", cfg.PromptHandler.ListCategories)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  // Prompts
  protected.POST("/prompts", cfg.PromptHandler.Create)
  protected.POST("/prompts/:promptId/render", cfg.PromptHandler.Render)
  protected.POST("/prompts/:promptId/like", cfg.LikeHandler.Toggle)
  protected.GET("/prompts/:promptId/like", cfg.LikeHandler.Status)
  // Cart
  protected.GET("/cart", cfg.CartHandler.Get)
  protected.POST("/cart", cfg.CartHandler.Add)
  protected.DELETE("/cart", cfg.CartHandler.Remove)
  // Purchases
  protected.POST("/purchases", cfg.PurchaseHandler.Checkout)
  protected.GET("/purchases", cfg.PurchaseHandler.List)

  return router
}
