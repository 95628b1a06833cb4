package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	recommendationservice "sponza/contexts/matchmaking/recommendation-service"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux             *http.ServeMux
	logger          *slog.Logger
	addr            string
	recommendations recommendationservice.Module
}

func New(
	recommendations recommendationservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:             http.NewServeMux(),
		logger:          logger,
		addr:            addr,
		recommendations: recommendations,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/influencer/recommendations", s.handleInfluencerRecommendations)
	s.mux.HandleFunc("GET /api/ai/recommendations", s.handleAIRecommendations)
	s.mux.HandleFunc("GET /api/brand/influencers/discover", s.handleDiscoverInfluencers)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
