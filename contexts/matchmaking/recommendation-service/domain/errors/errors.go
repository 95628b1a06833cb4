package errors

import "errors"

var (
	ErrInvalidRequest        = errors.New("recommendation request is invalid")
	ErrInfluencerNotFound    = errors.New("influencer profile not found")
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrForbidden             = errors.New("caller may not access this resource")
	ErrDependencyUnavailable = errors.New("recommendation dependency unavailable")
)
