package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coinquestapp/coinquest-backend/api/controllers"
	"github.com/coinquestapp/coinquest-backend/api/middleware"
	"github.com/coinquestapp/coinquest-backend/internal/auth"
	"github.com/coinquestapp/coinquest-backend/internal/challenges"
	"github.com/coinquestapp/coinquest-backend/internal/consumers/feed"
	"github.com/coinquestapp/coinquest-backend/internal/friends"
	"github.com/coinquestapp/coinquest-backend/internal/ledger"
	"github.com/coinquestapp/coinquest-backend/internal/users"
	"github.com/coinquestapp/coinquest-backend/pkg/auth/session"
	"github.com/coinquestapp/coinquest-backend/pkg/config"
	"github.com/coinquestapp/coinquest-backend/pkg/db"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
	"github.com/coinquestapp/coinquest-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         db.Pinger
	Redis      *redis.Client
	Sessions   session.AccessSessionChecker
	Auth       auth.Service
	Register   auth.RegisterService
	Challenges challenges.Service
	Ledger     ledger.Service
	Friends    friends.Service
	Feed       *feed.Reader
	UserRepo   *users.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadinessDeps(deps.DB, deps.Redis)))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.Idempotency(deps.Redis, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.Register, deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/users/me", controllers.UserMe(deps.UserRepo, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/templates", controllers.CatalogTemplates(logg))
			r.Get("/templates/{templateID}", controllers.CatalogTemplate(logg))
		})

		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", controllers.ChallengeList(deps.Challenges, logg))
			r.Post("/", controllers.ChallengeCreate(deps.Challenges, logg))
			r.Get("/{challengeID}", controllers.ChallengeGet(deps.Challenges, logg))
			r.Post("/{challengeID}/accept", controllers.ChallengeAccept(deps.Challenges, logg))
			r.Post("/{challengeID}/reject", controllers.ChallengeReject(deps.Challenges, logg))
			r.Post("/{challengeID}/cancel", controllers.ChallengeCancel(deps.Challenges, logg))
			r.Post("/{challengeID}/check", controllers.ChallengeCheck(deps.Challenges, logg))
		})

		r.Route("/currency", func(r chi.Router) {
			r.Get("/balance", controllers.CurrencyBalance(deps.Ledger, logg))
			r.Get("/history", controllers.CurrencyHistory(deps.Ledger, logg))
		})

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", controllers.FriendsList(deps.Friends, logg))
			r.Post("/", controllers.FriendAdd(deps.Friends, logg))
			r.Delete("/{friendID}", controllers.FriendRemove(deps.Friends, logg))
		})

		r.Get("/feed", controllers.ActivityFeed(deps.Feed, logg))
	})

	return r
}
