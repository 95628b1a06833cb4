package matching

import (
	"reflect"
	"testing"
	"time"

	"sponza/contexts/matchmaking/recommendation-service/domain/entities"
)

var fixedNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func campaignDaysOld(days int) entities.Campaign {
	return entities.Campaign{
		CampaignID: "c-1",
		Status:     entities.CampaignStatusPublished,
		CreatedAt:  fixedNow.Add(-time.Duration(days) * 24 * time.Hour),
	}
}

func TestNicheMatchOnlyScoresForty(t *testing.T) {
	subject := entities.Influencer{Niches: []string{"Fashion"}}
	candidate := campaignDaysOld(30)
	candidate.TargetInterests = []string{"Fashion"}
	candidate.TargetLocations = []string{"Berlin"}

	match := ScoreCampaignForInfluencer(subject, candidate, fixedNow)
	if match.Score != 40 {
		t.Fatalf("expected score 40, got %d", match.Score)
	}
	want := []string{"Matches your niche expertise"}
	if !reflect.DeepEqual(match.Reasons, want) {
		t.Fatalf("expected reasons %v, got %v", want, match.Reasons)
	}
}

func TestFullStackClampsToHundred(t *testing.T) {
	subject := entities.Influencer{
		Niches:   []string{"Tech"},
		Location: "Mumbai",
		Platforms: []entities.PlatformStat{
			{Platform: "Instagram", Followers: 150000, EngagementRate: 6},
		},
	}
	candidate := campaignDaysOld(1)
	candidate.TargetPlatforms = []string{"Instagram"}
	candidate.TargetInterests = []string{"Tech"}
	candidate.TargetLocations = []string{entities.AllLocationsSentinel}
	candidate.Budget = 20000

	match := ScoreCampaignForInfluencer(subject, candidate, fixedNow)
	if match.Score != 100 {
		t.Fatalf("expected clamped score 100, got %d", match.Score)
	}
	if len(match.Reasons) != 6 {
		t.Fatalf("expected all six rules to fire, got reasons %v", match.Reasons)
	}
}

func TestStackingBonusesClampInInfluencerDirection(t *testing.T) {
	subject := entities.Campaign{
		TargetInterests: []string{"Tech"},
		TargetPlatforms: []string{"YouTube"},
	}
	candidate := entities.Influencer{
		Niches: []string{"Tech"},
		Platforms: []entities.PlatformStat{
			{Platform: "YouTube", Followers: 120000, EngagementRate: 5.2},
		},
		Rating:      4.6,
		ReviewCount: 31,
	}

	match := ScoreInfluencerForCampaign(subject, candidate)
	if match.Score != 100 {
		t.Fatalf("expected clamped score 100, got %d", match.Score)
	}
	// 40+30+15+10+10+10+5+5 = 125 before the clamp, one reason per bonus.
	if len(match.Reasons) != 8 {
		t.Fatalf("expected eight stacked reasons, got %v", match.Reasons)
	}
}

func TestScoringIsDeterministicForFixedNow(t *testing.T) {
	subject := entities.Influencer{
		Niches:   []string{"Fitness"},
		Location: "Nairobi",
		Platforms: []entities.PlatformStat{
			{Platform: "TikTok", Followers: 45000, EngagementRate: 4.1},
		},
	}
	candidate := campaignDaysOld(3)
	candidate.TargetInterests = []string{"Fitness"}
	candidate.TargetPlatforms = []string{"TikTok"}
	candidate.Budget = 8000

	first := ScoreCampaignForInfluencer(subject, candidate, fixedNow)
	second := ScoreCampaignForInfluencer(subject, candidate, fixedNow)
	if first.Score != second.Score || !reflect.DeepEqual(first.Reasons, second.Reasons) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestScoresStayWithinBounds(t *testing.T) {
	subjects := []entities.Influencer{
		{},
		{Niches: []string{"Gaming"}},
		{
			Niches:   []string{"Gaming", "Tech"},
			Location: "Lagos",
			Platforms: []entities.PlatformStat{
				{Platform: "Twitch", Followers: 900000, EngagementRate: 9.5},
				{Platform: "YouTube", Followers: 250000, EngagementRate: 7.0},
			},
			Rating: 5,
		},
	}
	candidate := campaignDaysOld(0)
	candidate.TargetInterests = []string{"Gaming"}
	candidate.TargetPlatforms = []string{"Twitch"}
	candidate.TargetLocations = []string{entities.AllLocationsSentinel}
	candidate.Budget = 50000

	for _, subject := range subjects {
		match := ScoreCampaignForInfluencer(subject, candidate, fixedNow)
		if match.Score < 0 || match.Score > MaxScore {
			t.Fatalf("score %d out of bounds for subject %+v", match.Score, subject)
		}
		reverse := ScoreInfluencerForCampaign(candidate, subject)
		if reverse.Score < 0 || reverse.Score > MaxScore {
			t.Fatalf("score %d out of bounds in reverse direction", reverse.Score)
		}
	}
}

func TestTiedCandidatesKeepInputOrder(t *testing.T) {
	subject := entities.Influencer{Niches: []string{"Travel"}}
	first := campaignDaysOld(20)
	first.CampaignID = "c-first"
	first.TargetInterests = []string{"Travel"}
	second := campaignDaysOld(25)
	second.CampaignID = "c-second"
	second.TargetInterests = []string{"Travel"}
	third := campaignDaysOld(30)
	third.CampaignID = "c-third"

	ranked := ScoreCampaignsForInfluencer(subject, []entities.Campaign{first, second, third}, fixedNow)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}
	if ranked[0].Campaign.CampaignID != "c-first" || ranked[1].Campaign.CampaignID != "c-second" {
		t.Fatalf("expected stable tie order, got %s then %s",
			ranked[0].Campaign.CampaignID, ranked[1].Campaign.CampaignID)
	}
	if ranked[2].Campaign.CampaignID != "c-third" {
		t.Fatalf("expected zero-score candidate last, got %s", ranked[2].Campaign.CampaignID)
	}
}

func TestAddingMatchingAttributeNeverLowersScore(t *testing.T) {
	subject := entities.Influencer{
		Niches: []string{"Beauty"},
		Platforms: []entities.PlatformStat{
			{Platform: "Instagram", Followers: 20000, EngagementRate: 2.0},
		},
	}
	base := campaignDaysOld(10)
	base.TargetInterests = []string{"Beauty"}

	withPlatform := base
	withPlatform.TargetPlatforms = []string{"Instagram"}

	baseMatch := ScoreCampaignForInfluencer(subject, base, fixedNow)
	improved := ScoreCampaignForInfluencer(subject, withPlatform, fixedNow)
	if improved.Score < baseMatch.Score {
		t.Fatalf("adding a matching platform lowered score from %d to %d",
			baseMatch.Score, improved.Score)
	}
}

func TestEmptyCandidateListsReturnEmptyResults(t *testing.T) {
	ranked := ScoreCampaignsForInfluencer(entities.Influencer{}, nil, fixedNow)
	if len(ranked) != 0 {
		t.Fatalf("expected empty campaign ranking, got %d results", len(ranked))
	}
	reverse := ScoreInfluencersForCampaign(entities.Campaign{}, nil)
	if len(reverse) != 0 {
		t.Fatalf("expected empty influencer ranking, got %d results", len(reverse))
	}
}

func TestZeroPlatformStatsDegradeGracefully(t *testing.T) {
	subject := entities.Influencer{Niches: []string{"Food"}}
	candidate := campaignDaysOld(2)
	candidate.TargetInterests = []string{"Food"}
	candidate.TargetPlatforms = []string{"Instagram"}
	candidate.Budget = 30000

	match := ScoreCampaignForInfluencer(subject, candidate, fixedNow)
	// Niche (40) and recency (5) fire; reach and engagement treat the empty
	// stats as zero instead of failing.
	if match.Score != 45 {
		t.Fatalf("expected score 45, got %d (reasons %v)", match.Score, match.Reasons)
	}
}

func TestNicheSubstringContainmentIsCaseSensitive(t *testing.T) {
	subject := entities.Influencer{Niches: []string{"Fashion & Lifestyle"}}
	candidate := campaignDaysOld(30)
	candidate.TargetInterests = []string{"Fashion"}

	match := ScoreCampaignForInfluencer(subject, candidate, fixedNow)
	if match.Score != 40 {
		t.Fatalf("expected substring containment to match, got %d", match.Score)
	}

	lower := candidate
	lower.TargetInterests = []string{"fashion"}
	if got := ScoreCampaignForInfluencer(subject, lower, fixedNow); got.Score != 0 {
		t.Fatalf("expected case-sensitive miss, got %d", got.Score)
	}
}

func TestRecencyBoundaryExcludesExactSevenDays(t *testing.T) {
	subject := entities.Influencer{}
	candidate := campaignDaysOld(7)

	match := ScoreCampaignForInfluencer(subject, candidate, fixedNow)
	if match.Score != 0 {
		t.Fatalf("expected no recency bonus at exactly seven days, got %d", match.Score)
	}
}
