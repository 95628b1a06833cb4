package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"sponza/contexts/matchmaking/recommendation-service/domain/entities"
	domainerrors "sponza/contexts/matchmaking/recommendation-service/domain/errors"
	"sponza/contexts/matchmaking/recommendation-service/ports"
)

// Store is the seeded in-memory adapter used in development and unit tests.
type Store struct {
	mu sync.RWMutex

	influencers  map[string]entities.Influencer
	campaigns    map[string]entities.Campaign
	applications map[string][]string // campaign id -> applicant influencer ids
	outbox       []ports.OutboxMessage
	sequence     uint64
	now          time.Time
}

func NewStore() *Store {
	endOfQuarter := time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC)
	pastDeadline := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	return &Store{
		influencers: map[string]entities.Influencer{
			"inf-priya": {
				InfluencerID: "inf-priya",
				DisplayName:  "Priya Nair",
				Bio:          "Tech reviews and gadget deep dives.",
				Niches:       []string{"Tech"},
				Platforms: []entities.PlatformStat{
					{Platform: "Instagram", Followers: 150000, EngagementRate: 6},
					{Platform: "YouTube", Followers: 80000, EngagementRate: 4.2},
				},
				Location:     "Mumbai",
				Pricing:      []entities.PricePoint{{Price: 1200}, {Price: 2500}},
				Rating:       4.6,
				ReviewCount:  42,
				Verified:     true,
				Availability: entities.AvailabilityAvailable,
			},
			"inf-lena": {
				InfluencerID: "inf-lena",
				DisplayName:  "Lena Okafor",
				Bio:          "Everyday fashion on a budget.",
				Niches:       []string{"Fashion", "Lifestyle"},
				Platforms: []entities.PlatformStat{
					{Platform: "TikTok", Followers: 42000, EngagementRate: 3.4},
				},
				Location:     "Lagos",
				Pricing:      []entities.PricePoint{{Price: 450}},
				Rating:       4.1,
				ReviewCount:  17,
				Verified:     false,
				Availability: entities.AvailabilityAvailable,
			},
			"inf-marco": {
				InfluencerID: "inf-marco",
				DisplayName:  "Marco Silva",
				Bio:          "Fitness programs and meal prep.",
				Niches:       []string{"Fitness"},
				Platforms: []entities.PlatformStat{
					{Platform: "Instagram", Followers: 8000, EngagementRate: 2.1},
				},
				Location:     "Lisbon",
				Rating:       3.7,
				ReviewCount:  5,
				Verified:     false,
				Availability: entities.AvailabilityBusy,
			},
		},
		campaigns: map[string]entities.Campaign{
			"cmp-gadget-launch": {
				CampaignID:      "cmp-gadget-launch",
				BrandID:         "brand-volt",
				BrandName:       "Volt Electronics",
				Title:           "Gadget Launch Week",
				Description:     "Unboxing and first impressions of the new earbuds line.",
				TargetPlatforms: []string{"Instagram", "YouTube"},
				TargetInterests: []string{"Tech"},
				TargetLocations: []string{entities.AllLocationsSentinel},
				Budget:          20000,
				Status:          entities.CampaignStatusPublished,
				CreatedAt:       time.Date(2026, time.August, 25, 9, 0, 0, 0, time.UTC),
				EndsAt:          &endOfQuarter,
			},
			"cmp-street-style": {
				CampaignID:      "cmp-street-style",
				BrandID:         "brand-mode",
				BrandName:       "Mode Studio",
				Title:           "Street Style Edit",
				Description:     "Styled looks featuring the autumn capsule collection.",
				TargetPlatforms: []string{"TikTok"},
				TargetInterests: []string{"Fashion"},
				TargetLocations: []string{"Lagos", "Accra"},
				Budget:          6000,
				Status:          entities.CampaignStatusPublished,
				CreatedAt:       time.Date(2026, time.July, 2, 9, 0, 0, 0, time.UTC),
				EndsAt:          &endOfQuarter,
			},
			"cmp-expired-run": {
				CampaignID:      "cmp-expired-run",
				BrandID:         "brand-volt",
				BrandName:       "Volt Electronics",
				Title:           "Spring Clearance Run",
				Description:     "Clearance promotion that already closed.",
				TargetPlatforms: []string{"Instagram"},
				TargetInterests: []string{"Tech"},
				TargetLocations: []string{entities.AllLocationsSentinel},
				Budget:          4000,
				Status:          entities.CampaignStatusPublished,
				CreatedAt:       time.Date(2026, time.May, 10, 9, 0, 0, 0, time.UTC),
				EndsAt:          &pastDeadline,
			},
			"cmp-draft-teaser": {
				CampaignID:      "cmp-draft-teaser",
				BrandID:         "brand-mode",
				BrandName:       "Mode Studio",
				Title:           "Holiday Teaser",
				Description:     "Unpublished teaser campaign.",
				TargetInterests: []string{"Fashion"},
				Budget:          9000,
				Status:          entities.CampaignStatusDraft,
				CreatedAt:       time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC),
			},
		},
		applications: map[string][]string{
			"cmp-street-style": {"inf-lena"},
		},
		now: time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC),
	}
}

func (s *Store) GetInfluencer(ctx context.Context, influencerID string) (entities.Influencer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	influencer, ok := s.influencers[influencerID]
	if !ok {
		return entities.Influencer{}, domainerrors.ErrInfluencerNotFound
	}
	return influencer, nil
}

func (s *Store) ListAvailableInfluencers(ctx context.Context) ([]entities.Influencer, error) {
	return s.DiscoverInfluencers(ctx, ports.DiscoveryFilter{})
}

func (s *Store) DiscoverInfluencers(ctx context.Context, filter ports.DiscoveryFilter) ([]entities.Influencer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Influencer, 0, len(s.influencers))
	for _, influencer := range s.influencers {
		if influencer.Availability != entities.AvailabilityAvailable {
			continue
		}
		if !filter.Matches(influencer) {
			continue
		}
		items = append(items, influencer)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].InfluencerID < items[j].InfluencerID
	})
	return items, nil
}

func (s *Store) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	campaign, ok := s.campaigns[campaignID]
	if !ok {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *Store) ListOpenCampaigns(ctx context.Context, now time.Time) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if campaign.OpenForApplications(now) {
			items = append(items, campaign)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CampaignID < items[j].CampaignID
	})
	return items, nil
}

func (s *Store) LatestPublishedCampaign(ctx context.Context, brandID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest entities.Campaign
	found := false
	for _, campaign := range s.campaigns {
		if campaign.BrandID != brandID || campaign.Status != entities.CampaignStatusPublished {
			continue
		}
		if !found || campaign.CreatedAt.After(latest.CreatedAt) {
			latest = campaign
			found = true
		}
	}
	if !found {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return latest, nil
}

func (s *Store) AppliedCampaignIDs(ctx context.Context, influencerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for campaignID, applicants := range s.applications {
		for _, applicant := range applicants {
			if applicant == influencerID {
				out = append(out, campaignID)
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) CampaignApplicantIDs(ctx context.Context, campaignID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.applications[campaignID]...), nil
}

func (s *Store) ArchiveCampaignsPastEndDate(ctx context.Context, now time.Time, limit int) ([]ports.ExpirationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.campaigns))
	for campaignID := range s.campaigns {
		ids = append(ids, campaignID)
	}
	sort.Strings(ids)

	var archived []ports.ExpirationResult
	for _, campaignID := range ids {
		if len(archived) >= limit {
			break
		}
		campaign := s.campaigns[campaignID]
		if campaign.Status != entities.CampaignStatusPublished {
			continue
		}
		if campaign.EndsAt == nil || !campaign.EndsAt.UTC().Before(now.UTC()) {
			continue
		}
		campaign.Status = entities.CampaignStatusArchived
		s.campaigns[campaignID] = campaign
		archived = append(archived, ports.ExpirationResult{
			CampaignID: campaign.CampaignID,
			BrandID:    campaign.BrandID,
		})

		envelope := ports.EventEnvelope{
			EventID:        "evt_" + s.nextID(),
			EventType:      "campaign.archived",
			SourceService:  "matchmaking/recommendation-service",
			OccurredAtUTC:  now.UTC(),
			EntityType:     "campaign",
			EntityID:       campaign.CampaignID,
			PayloadVersion: 1,
			Payload:        map[string]string{"brand_id": campaign.BrandID},
		}
		payload, err := json.Marshal(envelope)
		if err != nil {
			return nil, err
		}
		s.outbox = append(s.outbox, ports.OutboxMessage{
			OutboxID:     "obx_" + s.nextID(),
			EventType:    envelope.EventType,
			PartitionKey: campaign.CampaignID,
			Payload:      payload,
			CreatedAt:    now.UTC(),
		})
	}
	return archived, nil
}

func (s *Store) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.outbox) {
		limit = len(s.outbox)
	}
	return append([]ports.OutboxMessage(nil), s.outbox[:limit]...), nil
}

func (s *Store) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, row := range s.outbox {
		if row.OutboxID == outboxID {
			s.outbox = append(s.outbox[:idx], s.outbox[idx+1:]...)
			return nil
		}
	}
	return domainerrors.ErrDependencyUnavailable
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

// SetNow pins the store clock for tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now.UTC()
}

// PutInfluencer and PutCampaign let tests shape the candidate pool.
func (s *Store) PutInfluencer(influencer entities.Influencer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.influencers[influencer.InfluencerID] = influencer
}

func (s *Store) PutCampaign(campaign entities.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[campaign.CampaignID] = campaign
}

func (s *Store) PutApplication(campaignID string, influencerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[campaignID] = append(s.applications[campaignID], influencerID)
}

func (s *Store) nextID() string {
	n := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("%d", n)
}

var _ ports.InfluencerRepository = (*Store)(nil)
var _ ports.CampaignRepository = (*Store)(nil)
var _ ports.ApplicationRepository = (*Store)(nil)
var _ ports.ExpirationRepository = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
