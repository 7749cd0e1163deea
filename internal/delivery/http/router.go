package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"trade_bridge/internal/adaptor"
)

type Router struct {
	exchangeHandler *ExchangeHandler
	botHandler      *BotHandler
	statusUseCase   adaptor.StatusUseCase
	statusManager   *StatusStreamManager
	allowedOrigins  []string
	staticDir       string
	development     bool
	log             zerolog.Logger
}

func NewRouter(
	exchangeUseCase adaptor.ExchangeUseCase,
	botUseCase adaptor.BotUseCase,
	statusUseCase adaptor.StatusUseCase,
	allowedOrigins []string,
	staticDir string,
	development bool,
	log zerolog.Logger,
) *Router {
	return &Router{
		exchangeHandler: NewExchangeHandler(exchangeUseCase),
		botHandler:      NewBotHandler(botUseCase),
		statusUseCase:   statusUseCase,
		statusManager:   NewStatusStreamManager(statusUseCase, log),
		allowedOrigins:  allowedOrigins,
		staticDir:       staticDir,
		development:     development,
		log:             log,
	}
}

func (rt *Router) Setup() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(RequestLogger(rt.log))
	r.Use(Recoverer(rt.log, rt.development))
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	r.Use(SecurityHeaders)
	r.Use(BodyLimit)

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, rt.statusUseCase.Snapshot(r.Context()))
	})

	// API routes
	r.Route("/api/exchange", func(r chi.Router) {
		r.Post("/connect", rt.exchangeHandler.Connect)
		r.Get("/balance", rt.exchangeHandler.Balance)
		r.Get("/trading-pairs", rt.exchangeHandler.TradingPairs)
	})

	r.Route("/api/bots", func(r chi.Router) {
		r.Post("/create-bot", rt.botHandler.CreateBot)
		r.Get("/bots", rt.botHandler.ListBots)
		r.Get("/bots/{id}", rt.botHandler.GetBot)
		r.Post("/bots/{id}/{action}", rt.botHandler.SetBotState)
		r.Get("/accounts", rt.botHandler.ListAccounts)
	})

	// Status stream
	r.Get("/ws", rt.statusManager.HandleWebSocket)

	// Client bridge assets
	if rt.staticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(rt.staticDir)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	return r
}

// Close shuts the status streams down; called before the HTTP server stops.
func (rt *Router) Close() {
	rt.statusManager.Close()
}
