package routes

import (
	"net/http"

	"github.com/researchpartner/api/internal/app"
	"github.com/researchpartner/api/internal/collab"
	"github.com/researchpartner/api/internal/handler"
	"github.com/researchpartner/api/internal/middleware"
)

const apiVersion = "1.0.0"

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(a.Cfg.AppName, apiVersion)
	auth := handler.NewAuthHandler(a.AuthService, a.PaperService)
	paper := handler.NewPaperHandler(a.PaperService, a.Cfg.MaxUploadSize)
	idea := handler.NewIdeaHandler(a.IdeaService)
	ws := collab.NewHandler(a.Hub, a.AuthService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /{$}", health.Root)
	mux.HandleFunc("GET /up", health.Up)

	// Auth flow (rate limited to slow down credential and OTP guessing)
	authLimiter := middleware.RateLimitFunc(a.Cfg.RateLimitAuth, a.Cfg.RateLimitWindow)

	mux.HandleFunc("POST /auth/register", authLimiter(auth.Register))
	mux.HandleFunc("POST /auth/login", authLimiter(auth.Login))
	mux.HandleFunc("POST /auth/verify-register-otp", authLimiter(auth.VerifyRegisterOTP))
	mux.HandleFunc("POST /auth/verify-login-otp", authLimiter(auth.VerifyLoginOTP))
	mux.HandleFunc("POST /auth/resend-otp", authLimiter(auth.ResendOTP))

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /auth/me", middleware.RequireAuth(auth.Me))

	// Papers
	mux.HandleFunc("POST /papers", middleware.RequireAuth(paper.Upload))
	mux.HandleFunc("GET /papers", middleware.RequireAuth(paper.List))
	mux.HandleFunc("GET /papers/dashboard/stats", middleware.RequireAuth(paper.DashboardStats))
	mux.HandleFunc("POST /papers/compare", middleware.RequireAuth(paper.Compare))
	mux.HandleFunc("GET /papers/{id}", middleware.RequireAuth(paper.Get))
	mux.HandleFunc("DELETE /papers/{id}", middleware.RequireAuth(paper.Delete))

	// Paper artifacts
	mux.HandleFunc("POST /papers/{id}/summary", middleware.RequireAuth(paper.GenerateSummary))
	mux.HandleFunc("POST /papers/{id}/ideas", middleware.RequireAuth(paper.GenerateIdeas))
	mux.HandleFunc("POST /papers/{id}/ideas/more", middleware.RequireAuth(paper.GenerateMoreIdeas))
	mux.HandleFunc("POST /papers/{id}/knowledge-graph", middleware.RequireAuth(paper.GenerateKnowledgeGraph))
	mux.HandleFunc("POST /papers/{id}/citations", middleware.RequireAuth(paper.GenerateCitations))
	mux.HandleFunc("POST /papers/{id}/slides", middleware.RequireAuth(paper.GenerateSlides))
	mux.HandleFunc("POST /papers/{id}/abstract", middleware.RequireAuth(paper.GenerateAbstract))
	mux.HandleFunc("POST /papers/{id}/insights", middleware.RequireAuth(paper.AnalyzeInsights))
	mux.HandleFunc("POST /papers/{id}/quiz", middleware.RequireAuth(paper.GenerateQuiz))

	// Paper chat
	mux.HandleFunc("POST /papers/{id}/ask", middleware.RequireAuth(paper.AskQuestion))
	mux.HandleFunc("DELETE /papers/{id}/chats", middleware.RequireAuth(paper.DeleteAllChats))
	mux.HandleFunc("DELETE /papers/{id}/chats/{chatId}", middleware.RequireAuth(paper.DeleteChat))

	// Collaboration
	mux.HandleFunc("POST /papers/{id}/collaborators", middleware.RequireAuth(paper.AddCollaborator))
	mux.HandleFunc("POST /papers/{id}/notes", middleware.RequireAuth(paper.AddNote))

	// Quiz attempts
	mux.HandleFunc("POST /papers/{id}/quiz-attempts", middleware.RequireAuth(paper.SaveQuizAttempt))
	mux.HandleFunc("GET /papers/{id}/quiz-attempts", middleware.RequireAuth(paper.QuizAttempts))

	// Ideas
	mux.HandleFunc("POST /papers/ideas/{ideaId}/ask", middleware.RequireAuth(idea.AskQuestion))
	mux.HandleFunc("GET /papers/ideas/{ideaId}/chats", middleware.RequireAuth(idea.Chats))
	mux.HandleFunc("DELETE /papers/ideas/{ideaId}/chats", middleware.RequireAuth(idea.DeleteAllChats))
	mux.HandleFunc("DELETE /papers/ideas/{ideaId}/chats/{chatId}", middleware.RequireAuth(idea.DeleteChat))
	mux.HandleFunc("POST /papers/ideas/{ideaId}/generate-paper", middleware.RequireAuth(idea.GeneratePaper))
	mux.HandleFunc("POST /papers/ideas/{ideaId}/modify-paper", middleware.RequireAuth(idea.ModifyPaper))
	mux.HandleFunc("POST /papers/ideas/{ideaId}/generate-slides", middleware.RequireAuth(idea.GenerateSlides))
	mux.HandleFunc("POST /papers/ideas/{ideaId}/modify-slides", middleware.RequireAuth(idea.ModifySlides))

	// Realtime collaboration (token checked inside the handler)
	mux.Handle("GET /ws", ws)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.CORS(a.Cfg.FrontendURL),
		middleware.RequestLogging,
		middleware.RateLimit(a.Cfg.RateLimitRequests, a.Cfg.RateLimitWindow),
		middleware.AuthMiddleware(a.AuthService),
	)
}
