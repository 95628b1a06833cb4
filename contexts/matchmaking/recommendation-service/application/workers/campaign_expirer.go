package workers

import (
	"context"
	"log/slog"
	"time"

	"sponza/contexts/matchmaking/recommendation-service/ports"
)

// CampaignExpirer sweeps published campaigns whose end date passed and
// archives them, so the recommendation candidate pool stays consistent with
// the eligibility rule.
type CampaignExpirer struct {
	Campaigns ports.ExpirationRepository
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (j CampaignExpirer) RunOnce(ctx context.Context) error {
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}

	archived, err := j.Campaigns.ArchiveCampaignsPastEndDate(ctx, now, limit)
	if err != nil {
		logger.Error("campaign expiration sweep failed",
			"event", "campaign_expiration_failed",
			"module", "matchmaking/recommendation-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(archived) > 0 {
		logger.Info("campaign expiration sweep completed",
			"event", "campaign_expiration_completed",
			"module", "matchmaking/recommendation-service",
			"layer", "worker",
			"archived_count", len(archived),
		)
	}
	return nil
}
