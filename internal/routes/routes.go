package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sahyogi/sahyogi-backend/internal/config"
	"github.com/sahyogi/sahyogi-backend/internal/features/accounts"
	"github.com/sahyogi/sahyogi-backend/internal/features/cases"
	"github.com/sahyogi/sahyogi-backend/internal/features/contact"
	"github.com/sahyogi/sahyogi-backend/internal/features/feedback"
	"github.com/sahyogi/sahyogi-backend/internal/features/follows"
	"github.com/sahyogi/sahyogi-backend/internal/features/posts"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/ratelimit"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/validator"
)

// SetupRoutes mounts every feature at the root of router. limiter guards
// authentication and the public forms, each with its own per-client budget.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, tokens *jwt.Manager, limiter *ratelimit.RateLimiter) {
	validator.Register()

	loginLimit := ratelimit.Scoped(limiter, ratelimit.ScopeLogin)
	formLimit := ratelimit.Scoped(limiter, ratelimit.ScopeForms)
	timeout := cfg.MongoTimeout

	for _, kind := range accounts.AllKinds() {
		accounts.RegisterRoutes(router, kind, accounts.NewRepository(db, kind), tokens, timeout, loginLimit)
		if kind.Followable {
			follows.RegisterRoutes(router, kind, follows.NewRepository(db, kind), tokens, timeout)
		}
	}

	posts.RegisterRoutes(router, posts.NewRepository(db), tokens, timeout)
	cases.RegisterRoutes(router, cases.NewRepository(db), tokens, timeout)
	contact.RegisterRoutes(router, contact.NewRepository(db), tokens, timeout, formLimit)
	feedback.RegisterRoutes(router, feedback.NewRepository(db), tokens, timeout, formLimit)
}
