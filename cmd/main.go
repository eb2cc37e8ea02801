package main

import (
  "fmt"
  "os"
  "time"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/utils"
  "github.com/interface8/Prompt-8/internal/db"
  "github.com/interface8/Prompt-8/internal/clients/redis"
  "github.com/interface8/Prompt-8/internal/repos"
  "github.com/interface8/Prompt-8/internal/services"
  "github.com/interface8/Prompt-8/internal/handlers"
  "github.com/interface8/Prompt-8/internal/middleware"
  "github.com/interface8/Prompt-8/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis (optional listing cache)
  var listingCache redis.ListingCache
  if cache, cErr := redis.NewListingCache(log); cErr != nil {
    log.Warn("Redis listing cache unavailable, serving from Postgres only", "error", cErr)
  } else {
    listingCache = cache
    defer listingCache.Close()
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  promptRepo := repos.NewPromptRepo(thePG, log)
  promptTypeRepo := repos.NewPromptTypeRepo(thePG, log)
  parameterRepo := repos.NewParameterRepo(thePG, log)
  modelRecRepo := repos.NewModelRecRepo(thePG, log)
  cartRepo := repos.NewCartRepo(thePG, log)
  cartItemRepo := repos.NewCartItemRepo(thePG, log)
  purchaseRepo := repos.NewPurchaseRepo(thePG, log)
  likeRepo := repos.NewLikeRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  promptService := services.NewPromptService(thePG, log, userRepo, promptRepo, promptTypeRepo, parameterRepo, modelRecRepo, listingCache)
  cartService := services.NewCartService(thePG, log, userRepo, promptRepo, cartRepo, cartItemRepo, purchaseRepo)
  purchaseService := services.NewPurchaseService(thePG, log, userRepo, promptRepo, cartRepo, cartItemRepo, purchaseRepo)
  likeService := services.NewLikeService(thePG, log, userRepo, promptRepo, likeRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  promptHandler := handlers.NewPromptHandler(promptService)
  cartHandler := handlers.NewCartHandler(cartService)
  purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
  likeHandler := handlers.NewLikeHandler(likeService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:       authHandler,
    AuthMiddleware:    authMiddleware,
    UserHandler:       userHandler,
    PromptHandler:     promptHandler,
    CartHandler:       cartHandler,
    PurchaseHandler:   purchaseHandler,
    LikeHandler:       likeHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
