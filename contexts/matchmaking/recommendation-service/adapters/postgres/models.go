package postgresadapter

import (
	"time"

	"sponza/contexts/matchmaking/recommendation-service/domain/entities"
)

type influencerModel struct {
	InfluencerID string    `gorm:"column:influencer_id;primaryKey"`
	DisplayName  string    `gorm:"column:display_name"`
	Bio          string    `gorm:"column:bio"`
	AvatarURL    string    `gorm:"column:avatar_url"`
	Niches       []string  `gorm:"column:niches;type:text[]"`
	Location     string    `gorm:"column:location"`
	Rating       float64   `gorm:"column:rating"`
	ReviewCount  int       `gorm:"column:review_count"`
	Verified     bool      `gorm:"column:verified"`
	Availability string    `gorm:"column:availability_status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (influencerModel) TableName() string {
	return "influencer_profiles"
}

type platformStatModel struct {
	ID             int64   `gorm:"column:id;primaryKey"`
	InfluencerID   string  `gorm:"column:influencer_id"`
	Platform       string  `gorm:"column:platform"`
	Followers      int64   `gorm:"column:followers"`
	EngagementRate float64 `gorm:"column:engagement_rate"`
}

func (platformStatModel) TableName() string {
	return "influencer_platform_stats"
}

type pricePointModel struct {
	ID           int64   `gorm:"column:id;primaryKey"`
	InfluencerID string  `gorm:"column:influencer_id"`
	Price        float64 `gorm:"column:price"`
}

func (pricePointModel) TableName() string {
	return "pricing_packages"
}

type campaignModel struct {
	CampaignID      string     `gorm:"column:campaign_id;primaryKey"`
	BrandID         string     `gorm:"column:brand_id"`
	BrandName       string     `gorm:"column:brand_name"`
	Title           string     `gorm:"column:title"`
	Description     string     `gorm:"column:description"`
	TargetPlatforms []string   `gorm:"column:target_platforms;type:text[]"`
	TargetInterests []string   `gorm:"column:target_interests;type:text[]"`
	TargetLocations []string   `gorm:"column:target_locations;type:text[]"`
	Budget          float64    `gorm:"column:budget"`
	Status          string     `gorm:"column:status"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	EndsAt          *time.Time `gorm:"column:ends_at"`
	ArchivedAt      *time.Time `gorm:"column:archived_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

type applicationModel struct {
	ApplicationID string    `gorm:"column:application_id;primaryKey"`
	CampaignID    string    `gorm:"column:campaign_id"`
	InfluencerID  string    `gorm:"column:influencer_id"`
	Status        string    `gorm:"column:status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (applicationModel) TableName() string {
	return "campaign_applications"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload;type:jsonb"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "recommendation_outbox"
}

func (m influencerModel) toEntity(stats []platformStatModel, pricing []pricePointModel) entities.Influencer {
	influencer := entities.Influencer{
		InfluencerID: m.InfluencerID,
		DisplayName:  m.DisplayName,
		Bio:          m.Bio,
		AvatarURL:    m.AvatarURL,
		Niches:       append([]string(nil), m.Niches...),
		Location:     m.Location,
		Rating:       m.Rating,
		ReviewCount:  m.ReviewCount,
		Verified:     m.Verified,
		Availability: entities.NormalizeAvailability(m.Availability),
	}
	for _, stat := range stats {
		influencer.Platforms = append(influencer.Platforms, entities.PlatformStat{
			Platform:       stat.Platform,
			Followers:      stat.Followers,
			EngagementRate: stat.EngagementRate,
		})
	}
	for _, point := range pricing {
		influencer.Pricing = append(influencer.Pricing, entities.PricePoint{Price: point.Price})
	}
	return influencer
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:      m.CampaignID,
		BrandID:         m.BrandID,
		BrandName:       m.BrandName,
		Title:           m.Title,
		Description:     m.Description,
		TargetPlatforms: append([]string(nil), m.TargetPlatforms...),
		TargetInterests: append([]string(nil), m.TargetInterests...),
		TargetLocations: append([]string(nil), m.TargetLocations...),
		Budget:          m.Budget,
		Status:          entities.NormalizeCampaignStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		EndsAt:          m.EndsAt,
	}
}
