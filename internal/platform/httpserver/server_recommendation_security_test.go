package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	recommendationservice "sponza/contexts/matchmaking/recommendation-service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	module := recommendationservice.NewInMemoryModule(logger)
	return New(module, logger, ":0")
}

func doRequest(t *testing.T, server *Server, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	server.mux.ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Status string `json:"status"`
		Error  struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Status != "error" {
		t.Fatalf("expected error status, got %q", envelope.Status)
	}
	return envelope.Error.Code
}

func TestRecommendationsRequireBearerToken(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/influencer/recommendations", map[string]string{
		"X-User-Id":   "inf-priya",
		"X-User-Role": "influencer",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %q", code)
	}
}

func TestRecommendationsRejectMalformedAuthorizationHeader(t *testing.T) {
	server := newTestServer(t)

	for _, header := range []string{"Bearer", "Bearer ", "Token abc123", "abc123"} {
		rec := doRequest(t, server, http.MethodGet, "/api/influencer/recommendations", map[string]string{
			"Authorization": header,
			"X-User-Id":     "inf-priya",
			"X-User-Role":   "influencer",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestRecommendationsRequireUserHeader(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/influencer/recommendations", map[string]string{
		"Authorization": "Bearer test-token",
		"X-User-Role":   "influencer",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "USER_REQUIRED" {
		t.Fatalf("expected USER_REQUIRED, got %q", code)
	}
}

func TestRecommendationsRejectNonInfluencerRole(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/influencer/recommendations", map[string]string{
		"Authorization": "Bearer test-token",
		"X-User-Id":     "brand-volt",
		"X-User-Role":   "brand",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "ROLE_REQUIRED" {
		t.Fatalf("expected ROLE_REQUIRED, got %q", code)
	}
}

func TestDiscoverRejectsInfluencerRole(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/brand/influencers/discover", map[string]string{
		"Authorization": "Bearer test-token",
		"X-User-Id":     "inf-priya",
		"X-User-Role":   "influencer",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAIRecommendationsRejectUnknownType(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/ai/recommendations?type=brands", map[string]string{
		"Authorization": "Bearer test-token",
		"X-User-Id":     "inf-priya",
		"X-User-Role":   "influencer",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "INVALID_REQUEST" {
		t.Fatalf("expected INVALID_REQUEST, got %q", code)
	}
}

func TestAIRecommendationsEnforceRolePerType(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/ai/recommendations?type=influencers", map[string]string{
		"Authorization": "Bearer test-token",
		"X-User-Id":     "inf-priya",
		"X-User-Role":   "influencer",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "PERMISSION_DENIED" {
		t.Fatalf("expected PERMISSION_DENIED, got %q", code)
	}
}

func TestRecommendationsSucceedForSeededInfluencer(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/influencer/recommendations", map[string]string{
		"Authorization": "Bearer test-token",
		"X-User-Id":     "inf-priya",
		"X-User-Role":   "influencer",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Status string `json:"status"`
		Data   struct {
			Recommendations []struct {
				CampaignID   string   `json:"campaign_id"`
				MatchScore   int      `json:"match_score"`
				MatchReasons []string `json:"match_reasons"`
			} `json:"recommendations"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Status != "success" {
		t.Fatalf("expected success status, got %q", envelope.Status)
	}
	if len(envelope.Data.Recommendations) == 0 {
		t.Fatal("expected at least one recommendation for seeded influencer")
	}
	first := envelope.Data.Recommendations[0]
	if first.MatchScore < 0 || first.MatchScore > 100 {
		t.Fatalf("match score out of range: %d", first.MatchScore)
	}
	if len(first.MatchReasons) == 0 {
		t.Fatal("expected match reasons on top recommendation")
	}
}

func TestRecommendationsUnknownInfluencerReturnsNotFound(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/influencer/recommendations", map[string]string{
		"Authorization": "Bearer test-token",
		"X-User-Id":     "inf-ghost",
		"X-User-Role":   "influencer",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "INFLUENCER_NOT_FOUND" {
		t.Fatalf("expected INFLUENCER_NOT_FOUND, got %q", code)
	}
}
