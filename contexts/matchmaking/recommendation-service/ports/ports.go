package ports

import (
	"context"
	"strings"
	"time"

	"sponza/contexts/matchmaking/recommendation-service/domain/entities"
	"sponza/contexts/matchmaking/recommendation-service/domain/matching"
	"sponza/internal/shared/events"
)

type Clock interface {
	Now() time.Time
}

type InfluencerRepository interface {
	GetInfluencer(ctx context.Context, influencerID string) (entities.Influencer, error)
	// ListAvailableInfluencers returns influencers with availability
	// "available"; further eligibility filtering happens in the application
	// layer.
	ListAvailableInfluencers(ctx context.Context) ([]entities.Influencer, error)
	// DiscoverInfluencers applies the content filters of filter to the
	// available pool; ordering and pagination happen after scoring in the
	// application layer.
	DiscoverInfluencers(ctx context.Context, filter DiscoveryFilter) ([]entities.Influencer, error)
}

type CampaignRepository interface {
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	// ListOpenCampaigns returns published campaigns whose end date is not in
	// the past relative to now.
	ListOpenCampaigns(ctx context.Context, now time.Time) ([]entities.Campaign, error)
	// LatestPublishedCampaign returns the brand's most recently published
	// campaign, or ErrCampaignNotFound when the brand has none.
	LatestPublishedCampaign(ctx context.Context, brandID string) (entities.Campaign, error)
}

type ApplicationRepository interface {
	// AppliedCampaignIDs lists campaigns the influencer already applied to.
	AppliedCampaignIDs(ctx context.Context, influencerID string) ([]string, error)
	// CampaignApplicantIDs lists influencers who already applied to the
	// campaign.
	CampaignApplicantIDs(ctx context.Context, campaignID string) ([]string, error)
}

// DiscoveryFilter narrows the influencer pool before scoring. Zero values
// mean "no constraint".
type DiscoveryFilter struct {
	Niche        string
	Platform     string
	Location     string
	MinFollowers int64
	MaxFollowers int64
	Verified     *bool
	Query        string
	Page         int
	PageSize     int
}

// Matches applies the content filters (everything except pagination) to one
// influencer. Adapters that cannot push a predicate into their query use it
// after hydration.
func (f DiscoveryFilter) Matches(influencer entities.Influencer) bool {
	if f.Niche != "" {
		ok := false
		for _, niche := range influencer.Niches {
			if strings.EqualFold(niche, f.Niche) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Platform != "" {
		ok := false
		for _, stat := range influencer.Platforms {
			if strings.EqualFold(stat.Platform, f.Platform) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Location != "" && !strings.EqualFold(influencer.Location, f.Location) {
		return false
	}
	followers := influencer.TotalFollowers()
	if f.MinFollowers > 0 && followers < f.MinFollowers {
		return false
	}
	if f.MaxFollowers > 0 && followers > f.MaxFollowers {
		return false
	}
	if f.Verified != nil && influencer.Verified != *f.Verified {
		return false
	}
	if needle := strings.ToLower(strings.TrimSpace(f.Query)); needle != "" {
		if !strings.Contains(strings.ToLower(influencer.DisplayName), needle) &&
			!strings.Contains(strings.ToLower(influencer.Bio), needle) {
			return false
		}
	}
	return true
}

// RecommendationInsights summarizes the candidate pool served with an
// influencer's recommendation feed.
type RecommendationInsights struct {
	OpenCampaignCount int
	AverageMatchScore int
	BestMatchScore    int
	StrongMatchCount  int
	TrendingInterests []string
}

type RecommendationSet struct {
	Recommendations     []matching.CampaignMatch
	Insights            RecommendationInsights
	ProfileOptimization []string
}

type Pagination struct {
	Page     int
	PageSize int
	Total    int
	HasNext  bool
}

type DiscoveryResult struct {
	Influencers []matching.InfluencerMatch
	Pagination  Pagination
}

type ExpirationResult struct {
	CampaignID string
	BrandID    string
}

type ExpirationRepository interface {
	// ArchiveCampaignsPastEndDate archives published campaigns whose end
	// date passed, writing one outbox row per archived campaign in the same
	// transaction.
	ArchiveCampaignsPastEndDate(ctx context.Context, now time.Time, limit int) ([]ExpirationResult, error)
}

type EventEnvelope = events.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
