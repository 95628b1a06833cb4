package entities

import (
	"strings"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusDraft      CampaignStatus = "draft"
	CampaignStatusPublished  CampaignStatus = "published"
	CampaignStatusInProgress CampaignStatus = "in-progress"
	CampaignStatusCompleted  CampaignStatus = "completed"
	CampaignStatusArchived   CampaignStatus = "archived"
)

// AllLocationsSentinel marks a campaign with no geographic restriction.
const AllLocationsSentinel = "All Locations"

// Campaign carries the targeting signal the scorer reads plus the
// presentation fields the recommendation payloads echo back.
type Campaign struct {
	CampaignID      string
	BrandID         string
	BrandName       string
	Title           string
	Description     string
	TargetPlatforms []string
	TargetInterests []string
	TargetLocations []string
	Budget          float64
	Status          CampaignStatus
	CreatedAt       time.Time
	EndsAt          *time.Time
}

// OpenForApplications reports whether the campaign is an eligible
// recommendation candidate: published with an end date not in the past.
func (c Campaign) OpenForApplications(now time.Time) bool {
	if c.Status != CampaignStatusPublished {
		return false
	}
	if c.EndsAt == nil {
		return true
	}
	return !c.EndsAt.UTC().Before(now.UTC())
}

// TargetsAllLocations reports whether the campaign carries the open-location
// sentinel.
func (c Campaign) TargetsAllLocations() bool {
	for _, location := range c.TargetLocations {
		if location == AllLocationsSentinel {
			return true
		}
	}
	return false
}

func IsSupportedCampaignStatus(value CampaignStatus) bool {
	switch value {
	case CampaignStatusDraft, CampaignStatusPublished, CampaignStatusInProgress,
		CampaignStatusCompleted, CampaignStatusArchived:
		return true
	default:
		return false
	}
}

func NormalizeCampaignStatus(raw string) CampaignStatus {
	return CampaignStatus(strings.ToLower(strings.TrimSpace(raw)))
}
