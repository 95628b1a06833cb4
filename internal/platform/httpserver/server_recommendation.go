package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	httpadapter "sponza/contexts/matchmaking/recommendation-service/adapters/http"
	recommendationerrors "sponza/contexts/matchmaking/recommendation-service/domain/errors"
	recommendationhttp "sponza/contexts/matchmaking/recommendation-service/transport/http"
)

func writeRecommendationError(w http.ResponseWriter, status int, code string, message string, details map[string]any) {
	writeJSON(w, status, recommendationhttp.ErrorEnvelope{
		Status: "error",
		Error: recommendationhttp.ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeRecommendationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommendationerrors.ErrInvalidRequest):
		writeRecommendationError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, recommendationerrors.ErrInfluencerNotFound):
		writeRecommendationError(w, http.StatusNotFound, "INFLUENCER_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, recommendationerrors.ErrCampaignNotFound):
		writeRecommendationError(w, http.StatusNotFound, "CAMPAIGN_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, recommendationerrors.ErrForbidden):
		writeRecommendationError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error(), nil)
	case errors.Is(err, recommendationerrors.ErrDependencyUnavailable):
		writeRecommendationError(w, http.StatusServiceUnavailable, "DEPENDENCY_UNAVAILABLE", err.Error(), nil)
	default:
		writeRecommendationError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}

func requireRecommendationAuthorization(w http.ResponseWriter, r *http.Request) bool {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		writeRecommendationError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required", nil)
		return false
	}
	return true
}

func requireRecommendationUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeRecommendationError(w, http.StatusUnauthorized, "USER_REQUIRED", "X-User-Id header is required", nil)
		return "", false
	}
	return userID, true
}

func requireRecommendationRole(w http.ResponseWriter, r *http.Request, role string) bool {
	actual := strings.ToLower(strings.TrimSpace(r.Header.Get("X-User-Role")))
	if actual != role {
		writeRecommendationError(w, http.StatusForbidden, "ROLE_REQUIRED", "caller role does not permit this resource", nil)
		return false
	}
	return true
}

func (s *Server) handleInfluencerRecommendations(w http.ResponseWriter, r *http.Request) {
	if !requireRecommendationAuthorization(w, r) {
		return
	}
	userID, ok := requireRecommendationUser(w, r)
	if !ok {
		return
	}
	if !requireRecommendationRole(w, r, httpadapter.RoleInfluencer) {
		return
	}

	req := recommendationhttp.RecommendationsRequest{
		Limit: r.URL.Query().Get("limit"),
	}
	resp, err := s.recommendations.Handler.RecommendationsHandler(r.Context(), userID, req)
	if err != nil {
		writeRecommendationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAIRecommendations(w http.ResponseWriter, r *http.Request) {
	if !requireRecommendationAuthorization(w, r) {
		return
	}
	userID, ok := requireRecommendationUser(w, r)
	if !ok {
		return
	}
	role := strings.ToLower(strings.TrimSpace(r.Header.Get("X-User-Role")))

	req := recommendationhttp.AIRecommendationsRequest{
		Type:       r.URL.Query().Get("type"),
		CampaignID: r.URL.Query().Get("campaign_id"),
		Limit:      r.URL.Query().Get("limit"),
	}
	resp, err := s.recommendations.Handler.AIRecommendationsHandler(r.Context(), userID, role, req)
	if err != nil {
		writeRecommendationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDiscoverInfluencers(w http.ResponseWriter, r *http.Request) {
	if !requireRecommendationAuthorization(w, r) {
		return
	}
	brandID, ok := requireRecommendationUser(w, r)
	if !ok {
		return
	}
	if !requireRecommendationRole(w, r, httpadapter.RoleBrand) {
		return
	}

	query := r.URL.Query()
	req := recommendationhttp.DiscoverInfluencersRequest{
		CampaignID:   query.Get("campaign_id"),
		Niche:        query.Get("niche"),
		Platform:     query.Get("platform"),
		Location:     query.Get("location"),
		MinFollowers: query.Get("min_followers"),
		MaxFollowers: query.Get("max_followers"),
		Verified:     query.Get("verified"),
		Query:        query.Get("q"),
		Page:         query.Get("page"),
		PageSize:     query.Get("page_size"),
	}
	resp, err := s.recommendations.Handler.DiscoverInfluencersHandler(r.Context(), brandID, req)
	if err != nil {
		writeRecommendationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
