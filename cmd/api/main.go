// @title Sahyogi API
// @version 1.0
// @description REST API connecting NGOs, social workers and users
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>" or the raw token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	docs "github.com/sahyogi/sahyogi-backend/docs"
	"github.com/sahyogi/sahyogi-backend/internal/config"
	"github.com/sahyogi/sahyogi-backend/internal/database"
	"github.com/sahyogi/sahyogi-backend/internal/features/accounts"
	"github.com/sahyogi/sahyogi-backend/internal/middleware"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/logger"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/ratelimit"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/response"
	"github.com/sahyogi/sahyogi-backend/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.LogLevel)
	defer logger.Sync()

	if cfg.JWTSecret == "" && cfg.IsProduction() {
		logger.Fatal("JWT_SECRET is required in production")
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer db.Disconnect(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	if err := database.EnsureIndexes(setupCtx, db.Database); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}
	created, err := accounts.SeedAdmin(setupCtx, accounts.NewRepository(db.Database, accounts.Admins), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}
	if created {
		logger.Info("seeded admin account", zap.String("email", cfg.AdminEmail))
	}
	cancel()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTExpire)
	limiter := ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow)
	limiter.StartCleanup(ctx, cfg.RateLimitWindow)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURLs))

	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := db.Ping(c.Request.Context()); err != nil {
			status = "degraded"
		}
		response.Success(c, map[string]interface{}{
			"status": status,
			"time":   time.Now().Unix(),
		})
	})

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	routes.SetupRoutes(router, db.Database, cfg, tokens, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("server exited")
}
