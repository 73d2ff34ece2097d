package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"recipebook/internal/config"
	"recipebook/internal/database"
	"recipebook/internal/middleware"
	"recipebook/internal/modules/auth"
	"recipebook/internal/modules/cart"
	"recipebook/internal/modules/catalog"
	"recipebook/internal/modules/favorite"
	"recipebook/internal/modules/recipe"
	"recipebook/internal/modules/shoppinglist"
	"recipebook/internal/modules/subscription"
	"recipebook/internal/modules/upload"
	jwtsvc "recipebook/internal/pkg/jwt"
	"recipebook/internal/pkg/pdf"
	"recipebook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewCartRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	imageStore := upload.NewStore(cfg.UploadDir)
	renderer := pdf.NewRenderer()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(tagRepo, ingredientRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	recipeService := recipe.NewService(
		recipeRepo,
		ingredientRepo,
		tagRepo,
		favoriteRepo,
		cartRepo,
		subscriptionRepo,
		imageStore,
		cfg.RecipeNameMin,
		cfg.RecipeTextMin,
	)
	recipeHandler := recipe.NewHandler(recipeService)

	favoriteService := favorite.NewService(favoriteRepo, recipeRepo)
	favoriteHandler := favorite.NewHandler(favoriteService)

	cartService := cart.NewService(cartRepo, recipeRepo)
	cartHandler := cart.NewHandler(cartService)

	subscriptionService := subscription.NewService(subscriptionRepo, userRepo, recipeRepo)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	shoppingService := shoppinglist.NewService(cartRepo, renderer, cfg.SiteName)
	shoppingHandler := shoppinglist.NewHandler(shoppingService)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS())

	r.Static(upload.StaticURLBase, cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		// unauthenticated reference data
		catalogHandler.RegisterRoutes(v1)

		// recipe reads work anonymously; a valid token adds per-viewer flags
		optional := v1.Group("/")
		optional.Use(middleware.OptionalAuth(j))

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))

		authHandler.RegisterRoutes(v1, protected)
		recipeHandler.RegisterRoutes(optional, protected)
		favoriteHandler.RegisterRoutes(protected)
		cartHandler.RegisterRoutes(protected)
		subscriptionHandler.RegisterRoutes(protected)
		shoppingHandler.RegisterRoutes(protected)
	}

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "prod" || appEnv == "production" || appEnv == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
