package app

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quizmod-backend/internal/adapter/knowledge"
	"github.com/quizforge/quizmod-backend/internal/auth"
	"github.com/quizforge/quizmod-backend/internal/config"
	"github.com/quizforge/quizmod-backend/internal/service/intake"
	"github.com/quizforge/quizmod-backend/internal/service/review"
	"github.com/quizforge/quizmod-backend/internal/transport/middleware"
	"github.com/quizforge/quizmod-backend/internal/transport/rest"
)

type routerDeps struct {
	cfg       *config.Config
	log       *slog.Logger
	pool      *pgxpool.Pool
	jwt       *auth.JWTManager
	limiter   *middleware.RateLimiter
	intake    *intake.Service
	review    *review.Service
	knowledge *knowledge.Store
}

// newRouter builds the HTTP routing table and wraps it in the middleware
// chain. Authorization is two-staged: the Auth middleware resolves the
// bearer token into user ID and role, and the admin handlers enforce the
// role themselves.
func newRouter(deps routerDeps) http.Handler {
	healthHandler := rest.NewHealthHandler(deps.pool, BuildVersion())
	feedbackHandler := rest.NewFeedbackHandler(deps.intake, deps.log)
	moderationHandler := rest.NewModerationHandler(deps.review, deps.log)
	knowledgeHandler := rest.NewKnowledgeHandler(deps.knowledge, deps.log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.HandleFunc("POST /api/v1/feedback", feedbackHandler.Submit)

	mux.HandleFunc("GET /api/v1/admin/reviews", moderationHandler.QueueList)
	mux.HandleFunc("GET /api/v1/admin/reviews/stats", moderationHandler.QueueStats)
	mux.HandleFunc("GET /api/v1/admin/reviews/{id}", moderationHandler.QueueItem)
	mux.HandleFunc("POST /api/v1/admin/reviews/{id}/resolve", moderationHandler.Resolve)
	mux.HandleFunc("POST /api/v1/admin/bias-flags", moderationHandler.ManualFlag)
	mux.HandleFunc("GET /api/v1/admin/insights", moderationHandler.Insights)
	mux.HandleFunc("GET /api/v1/admin/knowledge", knowledgeHandler.Retrieve)

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Recovery(deps.log),
		middleware.Logger(deps.log),
		middleware.CORS(deps.cfg.CORS),
	}
	if deps.cfg.Server.RateLimitPerMinute > 0 {
		mws = append(mws, deps.limiter.Limit(deps.cfg.Server.RateLimitPerMinute))
	}
	mws = append(mws, middleware.Auth(deps.jwt))

	return middleware.Chain(mws...)(mux)
}
