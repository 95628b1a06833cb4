package httpadapter

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"sponza/contexts/matchmaking/recommendation-service/application"
	domainerrors "sponza/contexts/matchmaking/recommendation-service/domain/errors"
	"sponza/contexts/matchmaking/recommendation-service/domain/matching"
	"sponza/contexts/matchmaking/recommendation-service/ports"
	httptransport "sponza/contexts/matchmaking/recommendation-service/transport/http"
)

const (
	RoleInfluencer = "influencer"
	RoleBrand      = "brand"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RecommendationsHandler(
	ctx context.Context,
	influencerID string,
	req httptransport.RecommendationsRequest,
) (httptransport.RecommendationsResponse, error) {
	limit := 0
	if parsed, err := strconv.Atoi(strings.TrimSpace(req.Limit)); err == nil {
		limit = parsed
	}

	result, err := h.Service.RecommendCampaigns(ctx, influencerID, limit)
	if err != nil {
		return httptransport.RecommendationsResponse{}, err
	}

	resp := httptransport.RecommendationsResponse{
		Status:    "success",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	resp.Data.Recommendations = make([]httptransport.CampaignMatchDTO, 0, len(result.Recommendations))
	for _, match := range result.Recommendations {
		resp.Data.Recommendations = append(resp.Data.Recommendations, mapCampaignMatchDTO(match))
	}
	resp.Data.Insights = httptransport.InsightsDTO{
		OpenCampaignCount: result.Insights.OpenCampaignCount,
		AverageMatchScore: result.Insights.AverageMatchScore,
		BestMatchScore:    result.Insights.BestMatchScore,
		StrongMatchCount:  result.Insights.StrongMatchCount,
		TrendingInterests: append([]string(nil), result.Insights.TrendingInterests...),
	}
	resp.Data.ProfileOptimization = append([]string(nil), result.ProfileOptimization...)
	return resp, nil
}

func (h Handler) AIRecommendationsHandler(
	ctx context.Context,
	userID string,
	role string,
	req httptransport.AIRecommendationsRequest,
) (httptransport.AIRecommendationsResponse, error) {
	limit := 0
	if parsed, err := strconv.Atoi(strings.TrimSpace(req.Limit)); err == nil {
		limit = parsed
	}
	kind := strings.ToLower(strings.TrimSpace(req.Type))

	resp := httptransport.AIRecommendationsResponse{
		Status:    "success",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	switch kind {
	case "campaigns":
		if role != RoleInfluencer {
			return httptransport.AIRecommendationsResponse{}, domainerrors.ErrForbidden
		}
		result, err := h.Service.RecommendCampaigns(ctx, userID, limit)
		if err != nil {
			return httptransport.AIRecommendationsResponse{}, err
		}
		resp.Data.Campaigns = make([]httptransport.CampaignMatchDTO, 0, len(result.Recommendations))
		for _, match := range result.Recommendations {
			resp.Data.Campaigns = append(resp.Data.Campaigns, mapCampaignMatchDTO(match))
		}
	case "influencers":
		if role != RoleBrand {
			return httptransport.AIRecommendationsResponse{}, domainerrors.ErrForbidden
		}
		ranked, err := h.Service.RecommendInfluencers(ctx, userID, strings.TrimSpace(req.CampaignID), limit)
		if err != nil {
			return httptransport.AIRecommendationsResponse{}, err
		}
		resp.Data.Influencers = make([]httptransport.InfluencerMatchDTO, 0, len(ranked))
		for _, match := range ranked {
			resp.Data.Influencers = append(resp.Data.Influencers, mapInfluencerMatchDTO(match))
		}
	default:
		return httptransport.AIRecommendationsResponse{}, domainerrors.ErrInvalidRequest
	}
	return resp, nil
}

func (h Handler) DiscoverInfluencersHandler(
	ctx context.Context,
	brandID string,
	req httptransport.DiscoverInfluencersRequest,
) (httptransport.DiscoverInfluencersResponse, error) {
	filter := ports.DiscoveryFilter{
		Niche:    strings.TrimSpace(req.Niche),
		Platform: strings.TrimSpace(req.Platform),
		Location: strings.TrimSpace(req.Location),
		Query:    strings.TrimSpace(req.Query),
	}
	if parsed, err := strconv.ParseInt(strings.TrimSpace(req.MinFollowers), 10, 64); err == nil {
		filter.MinFollowers = parsed
	}
	if parsed, err := strconv.ParseInt(strings.TrimSpace(req.MaxFollowers), 10, 64); err == nil {
		filter.MaxFollowers = parsed
	}
	if parsed, err := strconv.ParseBool(strings.TrimSpace(req.Verified)); err == nil {
		filter.Verified = &parsed
	}
	if parsed, err := strconv.Atoi(strings.TrimSpace(req.Page)); err == nil {
		filter.Page = parsed
	}
	if parsed, err := strconv.Atoi(strings.TrimSpace(req.PageSize)); err == nil {
		filter.PageSize = parsed
	}

	result, err := h.Service.DiscoverInfluencers(ctx, brandID, strings.TrimSpace(req.CampaignID), filter)
	if err != nil {
		return httptransport.DiscoverInfluencersResponse{}, err
	}

	resp := httptransport.DiscoverInfluencersResponse{
		Status:    "success",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	resp.Data.Influencers = make([]httptransport.InfluencerMatchDTO, 0, len(result.Influencers))
	for _, match := range result.Influencers {
		resp.Data.Influencers = append(resp.Data.Influencers, mapInfluencerMatchDTO(match))
	}
	resp.Data.Pagination.Page = result.Pagination.Page
	resp.Data.Pagination.PageSize = result.Pagination.PageSize
	resp.Data.Pagination.Total = result.Pagination.Total
	resp.Data.Pagination.HasNext = result.Pagination.HasNext
	return resp, nil
}

func mapCampaignMatchDTO(match matching.CampaignMatch) httptransport.CampaignMatchDTO {
	campaign := match.Campaign
	dto := httptransport.CampaignMatchDTO{
		CampaignID:      campaign.CampaignID,
		BrandID:         campaign.BrandID,
		BrandName:       campaign.BrandName,
		Title:           campaign.Title,
		Description:     campaign.Description,
		TargetPlatforms: append([]string(nil), campaign.TargetPlatforms...),
		TargetInterests: append([]string(nil), campaign.TargetInterests...),
		TargetLocations: append([]string(nil), campaign.TargetLocations...),
		Budget:          campaign.Budget,
		Status:          string(campaign.Status),
		CreatedAt:       campaign.CreatedAt.UTC().Format(time.RFC3339),
		MatchScore:      match.Score,
		MatchReasons:    append([]string(nil), match.Reasons...),
	}
	if campaign.EndsAt != nil {
		dto.EndsAt = campaign.EndsAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func mapInfluencerMatchDTO(match matching.InfluencerMatch) httptransport.InfluencerMatchDTO {
	influencer := match.Influencer
	stats := make([]httptransport.PlatformStatDTO, 0, len(influencer.Platforms))
	for _, stat := range influencer.Platforms {
		stats = append(stats, httptransport.PlatformStatDTO{
			Platform:       stat.Platform,
			Followers:      stat.Followers,
			EngagementRate: stat.EngagementRate,
		})
	}
	return httptransport.InfluencerMatchDTO{
		InfluencerID:      influencer.InfluencerID,
		DisplayName:       influencer.DisplayName,
		Bio:               influencer.Bio,
		AvatarURL:         influencer.AvatarURL,
		Niches:            append([]string(nil), influencer.Niches...),
		Platforms:         stats,
		Location:          influencer.Location,
		TotalFollowers:    influencer.TotalFollowers(),
		AverageEngagement: influencer.AverageEngagement(),
		Rating:            influencer.Rating,
		ReviewCount:       influencer.ReviewCount,
		Verified:          influencer.Verified,
		MatchScore:        match.Score,
		MatchReasons:      append([]string(nil), match.Reasons...),
	}
}
