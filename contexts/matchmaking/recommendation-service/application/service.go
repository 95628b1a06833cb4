package application

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"sponza/contexts/matchmaking/recommendation-service/domain/entities"
	domainerrors "sponza/contexts/matchmaking/recommendation-service/domain/errors"
	"sponza/contexts/matchmaking/recommendation-service/domain/matching"
	"sponza/contexts/matchmaking/recommendation-service/ports"
)

const (
	defaultRecommendationLimit = 10
	maxRecommendationLimit     = 50
	defaultDiscoveryPageSize   = 20
	maxDiscoveryPageSize       = 100
	strongMatchThreshold       = 70
	trendingInterestCount      = 3
)

type Service struct {
	Influencers  ports.InfluencerRepository
	Campaigns    ports.CampaignRepository
	Applications ports.ApplicationRepository
	Clock        ports.Clock
	Logger       *slog.Logger
}

// RecommendCampaigns ranks open campaigns for one influencer and decorates
// the feed with pool insights and profile-optimization tips. Candidates
// exclude campaigns the influencer already applied to.
func (s Service) RecommendCampaigns(ctx context.Context, influencerID string, limit int) (ports.RecommendationSet, error) {
	influencerID = strings.TrimSpace(influencerID)
	if influencerID == "" {
		return ports.RecommendationSet{}, domainerrors.ErrInvalidRequest
	}
	limit = normalizeLimit(limit)

	influencer, err := s.Influencers.GetInfluencer(ctx, influencerID)
	if err != nil {
		return ports.RecommendationSet{}, err
	}

	now := s.now()
	open, err := s.Campaigns.ListOpenCampaigns(ctx, now)
	if err != nil {
		return ports.RecommendationSet{}, err
	}
	applied, err := s.Applications.AppliedCampaignIDs(ctx, influencerID)
	if err != nil {
		return ports.RecommendationSet{}, err
	}

	appliedSet := make(map[string]struct{}, len(applied))
	for _, campaignID := range applied {
		appliedSet[campaignID] = struct{}{}
	}
	eligible := make([]entities.Campaign, 0, len(open))
	for _, campaign := range open {
		if _, ok := appliedSet[campaign.CampaignID]; ok {
			continue
		}
		if !campaign.OpenForApplications(now) {
			continue
		}
		eligible = append(eligible, campaign)
	}

	ranked := matching.ScoreCampaignsForInfluencer(influencer, eligible, now)
	insights := buildInsights(ranked, eligible)
	tips := buildProfileTips(influencer)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	resolveLogger(s.Logger).Debug("campaign recommendations served",
		"event", "campaign_recommendations_served",
		"module", "matchmaking/recommendation-service",
		"layer", "application",
		"influencer_id", influencerID,
		"candidate_count", len(eligible),
		"served_count", len(ranked),
	)
	return ports.RecommendationSet{
		Recommendations:     ranked,
		Insights:            insights,
		ProfileOptimization: tips,
	}, nil
}

// RecommendInfluencers ranks available influencers for one of the brand's
// campaigns. Candidates exclude influencers who already applied to it.
func (s Service) RecommendInfluencers(ctx context.Context, brandID string, campaignID string, limit int) ([]matching.InfluencerMatch, error) {
	brandID = strings.TrimSpace(brandID)
	campaignID = strings.TrimSpace(campaignID)
	if brandID == "" || campaignID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	limit = normalizeLimit(limit)

	campaign, err := s.Campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.BrandID != brandID {
		return nil, domainerrors.ErrForbidden
	}

	pool, err := s.eligibleInfluencers(ctx, campaign.CampaignID, ports.DiscoveryFilter{})
	if err != nil {
		return nil, err
	}

	ranked := matching.ScoreInfluencersForCampaign(campaign, pool)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	resolveLogger(s.Logger).Debug("influencer recommendations served",
		"event", "influencer_recommendations_served",
		"module", "matchmaking/recommendation-service",
		"layer", "application",
		"brand_id", brandID,
		"campaign_id", campaignID,
		"served_count", len(ranked),
	)
	return ranked, nil
}

// DiscoverInfluencers filters the available pool and scores it against the
// named campaign, or the brand's latest published campaign when no campaign
// is named. A brand with no published campaign gets the filtered pool with
// zero scores, ordered by total followers.
func (s Service) DiscoverInfluencers(ctx context.Context, brandID string, campaignID string, filter ports.DiscoveryFilter) (ports.DiscoveryResult, error) {
	brandID = strings.TrimSpace(brandID)
	campaignID = strings.TrimSpace(campaignID)
	if brandID == "" {
		return ports.DiscoveryResult{}, domainerrors.ErrInvalidRequest
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultDiscoveryPageSize
	}
	if filter.PageSize > maxDiscoveryPageSize {
		filter.PageSize = maxDiscoveryPageSize
	}
	if filter.MinFollowers < 0 || filter.MaxFollowers < 0 {
		return ports.DiscoveryResult{}, domainerrors.ErrInvalidRequest
	}
	if filter.MinFollowers > 0 && filter.MaxFollowers > 0 && filter.MinFollowers > filter.MaxFollowers {
		return ports.DiscoveryResult{}, domainerrors.ErrInvalidRequest
	}

	var subject entities.Campaign
	haveSubject := false
	if campaignID != "" {
		campaign, err := s.Campaigns.GetCampaign(ctx, campaignID)
		if err != nil {
			return ports.DiscoveryResult{}, err
		}
		if campaign.BrandID != brandID {
			return ports.DiscoveryResult{}, domainerrors.ErrForbidden
		}
		subject = campaign
		haveSubject = true
	} else {
		campaign, err := s.Campaigns.LatestPublishedCampaign(ctx, brandID)
		switch {
		case err == nil:
			subject = campaign
			haveSubject = true
		case errors.Is(err, domainerrors.ErrCampaignNotFound):
		default:
			return ports.DiscoveryResult{}, err
		}
	}

	var ranked []matching.InfluencerMatch
	if haveSubject {
		pool, err := s.eligibleInfluencers(ctx, subject.CampaignID, filter)
		if err != nil {
			return ports.DiscoveryResult{}, err
		}
		ranked = matching.ScoreInfluencersForCampaign(subject, pool)
	} else {
		pool, err := s.Influencers.DiscoverInfluencers(ctx, filter)
		if err != nil {
			return ports.DiscoveryResult{}, err
		}
		ranked = make([]matching.InfluencerMatch, 0, len(pool))
		for _, influencer := range pool {
			ranked = append(ranked, matching.InfluencerMatch{Influencer: influencer})
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Influencer.TotalFollowers() > ranked[j].Influencer.TotalFollowers()
		})
	}

	total := len(ranked)
	start := (filter.Page - 1) * filter.PageSize
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	page := append([]matching.InfluencerMatch(nil), ranked[start:end]...)

	return ports.DiscoveryResult{
		Influencers: page,
		Pagination: ports.Pagination{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Total:    total,
			HasNext:  end < total,
		},
	}, nil
}

// eligibleInfluencers loads the available pool matching filter and drops
// influencers who already applied to the subject campaign.
func (s Service) eligibleInfluencers(ctx context.Context, campaignID string, filter ports.DiscoveryFilter) ([]entities.Influencer, error) {
	pool, err := s.Influencers.DiscoverInfluencers(ctx, filter)
	if err != nil {
		return nil, err
	}
	applicants, err := s.Applications.CampaignApplicantIDs(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	applicantSet := make(map[string]struct{}, len(applicants))
	for _, influencerID := range applicants {
		applicantSet[influencerID] = struct{}{}
	}
	eligible := make([]entities.Influencer, 0, len(pool))
	for _, influencer := range pool {
		if _, ok := applicantSet[influencer.InfluencerID]; ok {
			continue
		}
		if influencer.Availability != entities.AvailabilityAvailable {
			continue
		}
		eligible = append(eligible, influencer)
	}
	return eligible, nil
}

func buildInsights(ranked []matching.CampaignMatch, eligible []entities.Campaign) ports.RecommendationInsights {
	insights := ports.RecommendationInsights{
		OpenCampaignCount: len(eligible),
		TrendingInterests: trendingInterests(eligible),
	}
	if len(ranked) == 0 {
		return insights
	}

	total := 0
	for _, match := range ranked {
		total += match.Score
		if match.Score > insights.BestMatchScore {
			insights.BestMatchScore = match.Score
		}
		if match.Score >= strongMatchThreshold {
			insights.StrongMatchCount++
		}
	}
	insights.AverageMatchScore = total / len(ranked)
	return insights
}

// trendingInterests returns the most frequent target interests across the
// open pool, most common first with first-seen order breaking ties.
func trendingInterests(campaigns []entities.Campaign) []string {
	counts := map[string]int{}
	order := map[string]int{}
	var interests []string
	for _, campaign := range campaigns {
		for _, interest := range campaign.TargetInterests {
			interest = strings.TrimSpace(interest)
			if interest == "" {
				continue
			}
			if _, seen := counts[interest]; !seen {
				order[interest] = len(interests)
				interests = append(interests, interest)
			}
			counts[interest]++
		}
	}
	sort.SliceStable(interests, func(i, j int) bool {
		if counts[interests[i]] != counts[interests[j]] {
			return counts[interests[i]] > counts[interests[j]]
		}
		return order[interests[i]] < order[interests[j]]
	})
	if len(interests) > trendingInterestCount {
		interests = interests[:trendingInterestCount]
	}
	return interests
}

func buildProfileTips(influencer entities.Influencer) []string {
	var tips []string
	if len(influencer.Platforms) == 0 {
		tips = append(tips, "Connect at least one social platform to unlock platform and reach matching")
	}
	if len(influencer.Niches) == 0 {
		tips = append(tips, "Add your content niches so campaigns can find you")
	}
	if len(influencer.Platforms) > 0 && influencer.AverageEngagement() <= 3.0 {
		tips = append(tips, "Grow your average engagement above 3% to earn the engagement bonus")
	}
	if len(influencer.Pricing) == 0 {
		tips = append(tips, "Publish pricing packages so brands can budget for you")
	}
	if !influencer.Verified {
		tips = append(tips, "Verify your account to build trust with brands")
	}
	return tips
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultRecommendationLimit
	}
	if limit > maxRecommendationLimit {
		return maxRecommendationLimit
	}
	return limit
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
