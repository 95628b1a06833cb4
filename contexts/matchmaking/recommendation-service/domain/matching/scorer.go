// Package matching ranks campaigns against influencer profiles and vice
// versa. Scoring is a fixed-weight additive heuristic: each rule that fires
// adds its weight and appends a human-readable reason, then the sum is
// clamped to [0, 100]. Both directions are pure functions; the wall clock
// enters only through the explicit now parameter.
package matching

import (
	"sort"
	"strings"
	"time"

	"sponza/contexts/matchmaking/recommendation-service/domain/entities"
)

const (
	weightNicheOverlap    = 40
	weightPlatformOverlap = 30
	weightBudgetReach     = 20
	weightEngagement      = 10
	weightLocation        = 5
	weightRecency         = 5

	weightRatingGood      = 15
	weightRatingExcellent = 10
	weightEngagementHigh  = 10
	weightAudienceBase    = 5
	weightAudienceLarge   = 5

	// MaxScore caps every match; the influencer-ranking direction can sum
	// to 125 before the clamp and that pre-clamp ordering is intentional.
	MaxScore = 100

	recencyWindow = 7 * 24 * time.Hour
)

// Match is one scored pairing: an integer score in [0, MaxScore] and the
// reasons in the order the contributing rules fired.
type Match struct {
	Score   int
	Reasons []string
}

// CampaignMatch pairs a candidate campaign with its match against an
// influencer subject.
type CampaignMatch struct {
	Campaign entities.Campaign
	Score    int
	Reasons  []string
}

// InfluencerMatch pairs a candidate influencer with its match against a
// campaign subject.
type InfluencerMatch struct {
	Influencer entities.Influencer
	Score      int
	Reasons    []string
}

// ScoreCampaignsForInfluencer ranks candidate campaigns for one influencer,
// descending by score. Ties keep the relative order candidates arrived in.
// Callers pre-filter candidates to open campaigns the influencer has not
// applied to.
func ScoreCampaignsForInfluencer(
	subject entities.Influencer,
	candidates []entities.Campaign,
	now time.Time,
) []CampaignMatch {
	matches := make([]CampaignMatch, 0, len(candidates))
	for _, candidate := range candidates {
		match := ScoreCampaignForInfluencer(subject, candidate, now)
		matches = append(matches, CampaignMatch{
			Campaign: candidate,
			Score:    match.Score,
			Reasons:  match.Reasons,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// ScoreCampaignForInfluencer scores a single campaign against an influencer
// profile.
func ScoreCampaignForInfluencer(
	subject entities.Influencer,
	candidate entities.Campaign,
	now time.Time,
) Match {
	score := 0
	var reasons []string

	if nicheMatchesInterests(subject.Niches, candidate.TargetInterests) {
		score += weightNicheOverlap
		reasons = append(reasons, "Matches your niche expertise")
	}

	if platformsOverlap(subject, candidate.TargetPlatforms) {
		score += weightPlatformOverlap
		reasons = append(reasons, "Available on your active platforms")
	}

	followers := subject.TotalFollowers()
	switch {
	case followers >= 1000 && followers <= 100000 && candidate.Budget >= 5000:
		score += weightBudgetReach
		reasons = append(reasons, "Budget matches your follower range")
	case followers > 100000 && candidate.Budget >= 15000:
		score += weightBudgetReach
		reasons = append(reasons, "Premium budget for your reach")
	}

	if subject.AverageEngagement() > 3.0 {
		score += weightEngagement
		reasons = append(reasons, "High engagement rate valued")
	}

	if locationTargeted(subject.Location, candidate) {
		score += weightLocation
		reasons = append(reasons, "Location preference match")
	}

	if now.UTC().Sub(candidate.CreatedAt.UTC()) < recencyWindow {
		score += weightRecency
		reasons = append(reasons, "Recently posted campaign")
	}

	return Match{Score: clampScore(score), Reasons: reasons}
}

// ScoreInfluencersForCampaign ranks candidate influencers for one campaign,
// descending by score with stable ties. Callers pre-filter candidates to
// available influencers who have not applied to the subject campaign.
func ScoreInfluencersForCampaign(
	subject entities.Campaign,
	candidates []entities.Influencer,
) []InfluencerMatch {
	matches := make([]InfluencerMatch, 0, len(candidates))
	for _, candidate := range candidates {
		match := ScoreInfluencerForCampaign(subject, candidate)
		matches = append(matches, InfluencerMatch{
			Influencer: candidate,
			Score:      match.Score,
			Reasons:    match.Reasons,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// ScoreInfluencerForCampaign scores a single influencer against a campaign.
// Quality bonuses stack, so the raw sum can reach 125 before the clamp.
func ScoreInfluencerForCampaign(
	subject entities.Campaign,
	candidate entities.Influencer,
) Match {
	score := 0
	var reasons []string

	if interestsIntersectNiches(subject.TargetInterests, candidate.Niches) {
		score += weightNicheOverlap
		reasons = append(reasons, "Creates content in your target interests")
	}

	if platformsOverlap(candidate, subject.TargetPlatforms) {
		score += weightPlatformOverlap
		reasons = append(reasons, "Active on your target platforms")
	}

	if candidate.Rating >= 4.0 {
		score += weightRatingGood
		reasons = append(reasons, "Highly rated by past collaborations")
		if candidate.Rating >= 4.5 {
			score += weightRatingExcellent
			reasons = append(reasons, "Top-tier rating")
		}
	}

	engagement := candidate.AverageEngagement()
	if engagement >= 3.0 {
		score += weightEngagement
		reasons = append(reasons, "Strong audience engagement")
		if engagement >= 5.0 {
			score += weightEngagementHigh
			reasons = append(reasons, "Exceptional engagement rate")
		}
	}

	followers := candidate.TotalFollowers()
	if followers >= 10000 {
		score += weightAudienceBase
		reasons = append(reasons, "Established audience size")
		if followers >= 100000 {
			score += weightAudienceLarge
			reasons = append(reasons, "Large audience reach")
		}
	}

	return Match{Score: clampScore(score), Reasons: reasons}
}

// nicheMatchesInterests uses case-sensitive substring containment: a niche
// like "Fashion & Lifestyle" matches the interest "Fashion". The two scoring
// directions deliberately differ here; see interestsIntersectNiches.
func nicheMatchesInterests(niches []string, interests []string) bool {
	for _, niche := range niches {
		for _, interest := range interests {
			if interest == "" {
				continue
			}
			if strings.Contains(niche, interest) {
				return true
			}
		}
	}
	return false
}

// interestsIntersectNiches uses exact case-sensitive set membership: partial
// niche names do not match when ranking influencers for a campaign.
func interestsIntersectNiches(interests []string, niches []string) bool {
	for _, interest := range interests {
		for _, niche := range niches {
			if interest != "" && interest == niche {
				return true
			}
		}
	}
	return false
}

func platformsOverlap(influencer entities.Influencer, targetPlatforms []string) bool {
	for _, platform := range targetPlatforms {
		if influencer.HasPlatform(platform) {
			return true
		}
	}
	return false
}

func locationTargeted(location string, candidate entities.Campaign) bool {
	if candidate.TargetsAllLocations() {
		return true
	}
	if location == "" {
		return false
	}
	for _, target := range candidate.TargetLocations {
		if target == location {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
