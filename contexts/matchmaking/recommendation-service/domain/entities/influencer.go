package entities

import "strings"

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityBusy        AvailabilityStatus = "busy"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

// PlatformStat is one connected social platform. Platforms are unique within
// an influencer's stats; missing numeric fields default to zero.
type PlatformStat struct {
	Platform       string
	Followers      int64
	EngagementRate float64
}

// PricePoint is one published collaboration package price.
type PricePoint struct {
	Price float64
}

// Influencer carries the profile signal the scorer reads plus the
// presentation fields the discovery payloads echo back.
type Influencer struct {
	InfluencerID string
	DisplayName  string
	Bio          string
	AvatarURL    string
	Niches       []string
	Platforms    []PlatformStat
	Location     string
	Pricing      []PricePoint
	Rating       float64
	ReviewCount  int
	Verified     bool
	Availability AvailabilityStatus
}

// TotalFollowers sums follower counts across all connected platforms.
func (i Influencer) TotalFollowers() int64 {
	var total int64
	for _, stat := range i.Platforms {
		total += stat.Followers
	}
	return total
}

// AverageEngagement is the arithmetic mean of per-platform engagement rates.
// An influencer with no connected platforms averages to zero rather than
// failing.
func (i Influencer) AverageEngagement() float64 {
	if len(i.Platforms) == 0 {
		return 0
	}
	var total float64
	for _, stat := range i.Platforms {
		total += stat.EngagementRate
	}
	return total / float64(len(i.Platforms))
}

// HasPlatform reports whether the influencer is active on the named platform.
func (i Influencer) HasPlatform(platform string) bool {
	for _, stat := range i.Platforms {
		if stat.Platform == platform {
			return true
		}
	}
	return false
}

func IsSupportedAvailability(value AvailabilityStatus) bool {
	switch value {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityUnavailable:
		return true
	default:
		return false
	}
}

func NormalizeAvailability(raw string) AvailabilityStatus {
	return AvailabilityStatus(strings.ToLower(strings.TrimSpace(raw)))
}
