package http

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type PlatformStatDTO struct {
	Platform       string  `json:"platform"`
	Followers      int64   `json:"followers"`
	EngagementRate float64 `json:"engagement_rate"`
}

type CampaignMatchDTO struct {
	CampaignID      string   `json:"campaign_id"`
	BrandID         string   `json:"brand_id"`
	BrandName       string   `json:"brand_name"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	TargetPlatforms []string `json:"target_platforms"`
	TargetInterests []string `json:"target_interests"`
	TargetLocations []string `json:"target_locations"`
	Budget          float64  `json:"budget"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"created_at"`
	EndsAt          string   `json:"ends_at,omitempty"`
	MatchScore      int      `json:"match_score"`
	MatchReasons    []string `json:"match_reasons"`
}

type InfluencerMatchDTO struct {
	InfluencerID      string            `json:"influencer_id"`
	DisplayName       string            `json:"display_name"`
	Bio               string            `json:"bio,omitempty"`
	AvatarURL         string            `json:"avatar_url,omitempty"`
	Niches            []string          `json:"niches"`
	Platforms         []PlatformStatDTO `json:"platforms"`
	Location          string            `json:"location,omitempty"`
	TotalFollowers    int64             `json:"total_followers"`
	AverageEngagement float64           `json:"average_engagement"`
	Rating            float64           `json:"rating"`
	ReviewCount       int               `json:"review_count"`
	Verified          bool              `json:"verified"`
	MatchScore        int               `json:"match_score"`
	MatchReasons      []string          `json:"match_reasons"`
}

type InsightsDTO struct {
	OpenCampaignCount int      `json:"open_campaign_count"`
	AverageMatchScore int      `json:"average_match_score"`
	BestMatchScore    int      `json:"best_match_score"`
	StrongMatchCount  int      `json:"strong_match_count"`
	TrendingInterests []string `json:"trending_interests"`
}

type RecommendationsRequest struct {
	Limit string
}

type RecommendationsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Recommendations     []CampaignMatchDTO `json:"recommendations"`
		Insights            InsightsDTO        `json:"insights"`
		ProfileOptimization []string           `json:"profile_optimization"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type AIRecommendationsRequest struct {
	Type       string
	CampaignID string
	Limit      string
}

type AIRecommendationsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Campaigns   []CampaignMatchDTO   `json:"campaigns,omitempty"`
		Influencers []InfluencerMatchDTO `json:"influencers,omitempty"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type DiscoverInfluencersRequest struct {
	CampaignID   string
	Niche        string
	Platform     string
	Location     string
	MinFollowers string
	MaxFollowers string
	Verified     string
	Query        string
	Page         string
	PageSize     string
}

type DiscoverInfluencersResponse struct {
	Status string `json:"status"`
	Data   struct {
		Influencers []InfluencerMatchDTO `json:"influencers"`
		Pagination  struct {
			Page     int  `json:"page"`
			PageSize int  `json:"page_size"`
			Total    int  `json:"total"`
			HasNext  bool `json:"has_next"`
		} `json:"pagination"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}
