package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/vastraverse/storefront-api/internal/config"
	"github.com/vastraverse/storefront-api/internal/handler"
	"github.com/vastraverse/storefront-api/internal/middleware"
	"github.com/vastraverse/storefront-api/internal/repository"
	"github.com/vastraverse/storefront-api/internal/service"
	"github.com/vastraverse/storefront-api/migrations"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN())
	if err != nil {
		log.Error("parse db config", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.DB.MaxConns

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to PostgreSQL")

	if err := runMigrations(poolCfg); err != nil {
		log.Error("run migrations", "error", err)
		os.Exit(1)
	}
	log.Info("schema up to date")

	// Repositories
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	cartRepo := repository.NewCartRepository(dbPool)
	wishlistRepo := repository.NewWishlistRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	catalogSvc := service.NewCatalogService(productRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	wishlistSvc := service.NewWishlistService(wishlistRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc, log)
	productH := handler.NewProductHandler(catalogSvc, log)
	cartH := handler.NewCartHandler(cartSvc, log)
	wishlistH := handler.NewWishlistHandler(wishlistSvc, log)
	orderH := handler.NewOrderHandler(orderSvc, log)
	healthH := handler.NewHealthHandler(dbPool)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	requireAuth := middleware.AuthMiddleware(cfg.JWT.Secret)

	auth := router.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/logout", authH.Logout)
	auth.GET("/profile", requireAuth, authH.Profile)

	products := router.Group("/products")
	products.GET("", productH.List)
	products.GET("/:id", productH.GetByID)
	products.GET("/category/:category", productH.ListByCategory)
	products.GET("/meta/categories", productH.Categories)
	products.POST("", requireAuth, middleware.AdminOnly(), productH.Create)

	cart := router.Group("/cart", requireAuth)
	cart.GET("", cartH.Get)
	cart.POST("", cartH.Add)
	cart.PUT("/:id", cartH.Update)
	cart.DELETE("/:id", cartH.Remove)
	cart.DELETE("", cartH.Clear)

	wishlist := router.Group("/wishlist", requireAuth)
	wishlist.GET("", wishlistH.Get)
	wishlist.POST("", wishlistH.Add)
	wishlist.DELETE("/:id", wishlistH.Remove)
	wishlist.DELETE("/product/:productId", wishlistH.RemoveByProduct)

	orders := router.Group("/orders", requireAuth)
	orders.GET("", orderH.List)
	orders.POST("", orderH.Create)
	orders.GET("/:id", orderH.Get)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	log.Info("server stopped")
}

func runMigrations(poolCfg *pgxpool.Config) error {
	db := sql.OpenDB(stdlib.GetConnector(*poolCfg.ConnConfig))
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
