package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"sponza/contexts/matchmaking/recommendation-service/domain/entities"
	domainerrors "sponza/contexts/matchmaking/recommendation-service/domain/errors"
	"sponza/contexts/matchmaking/recommendation-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"

	archivedEventType = "campaign.archived"
	sourceService     = "matchmaking/recommendation-service"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetInfluencer(ctx context.Context, influencerID string) (entities.Influencer, error) {
	var row influencerModel
	err := r.db.WithContext(ctx).
		Where("influencer_id = ?", strings.TrimSpace(influencerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Influencer{}, domainerrors.ErrInfluencerNotFound
		}
		return entities.Influencer{}, err
	}

	hydrated, err := r.hydrateInfluencers(ctx, []influencerModel{row})
	if err != nil {
		return entities.Influencer{}, err
	}
	return hydrated[0], nil
}

func (r *Repository) ListAvailableInfluencers(ctx context.Context) ([]entities.Influencer, error) {
	return r.DiscoverInfluencers(ctx, ports.DiscoveryFilter{})
}

func (r *Repository) DiscoverInfluencers(ctx context.Context, filter ports.DiscoveryFilter) ([]entities.Influencer, error) {
	tx := r.db.WithContext(ctx).
		Model(&influencerModel{}).
		Where("availability_status = ?", string(entities.AvailabilityAvailable))
	if filter.Location != "" {
		tx = tx.Where("LOWER(location) = LOWER(?)", filter.Location)
	}
	if filter.Verified != nil {
		tx = tx.Where("verified = ?", *filter.Verified)
	}

	var rows []influencerModel
	if err := tx.Order("influencer_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	hydrated, err := r.hydrateInfluencers(ctx, rows)
	if err != nil {
		return nil, err
	}

	// Follower totals, platform membership, and free-text search need the
	// hydrated stats, so those predicates run here rather than in SQL.
	out := make([]entities.Influencer, 0, len(hydrated))
	for _, influencer := range hydrated {
		if filter.Matches(influencer) {
			out = append(out, influencer)
		}
	}
	return out, nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListOpenCampaigns(ctx context.Context, now time.Time) ([]entities.Campaign, error) {
	var rows []campaignModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.CampaignStatusPublished)).
		Where("ends_at IS NULL OR ends_at >= ?", now.UTC()).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) LatestPublishedCampaign(ctx context.Context, brandID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		Where("status = ?", string(entities.CampaignStatusPublished)).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) AppliedCampaignIDs(ctx context.Context, influencerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&applicationModel{}).
		Where("influencer_id = ?", strings.TrimSpace(influencerID)).
		Pluck("campaign_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) CampaignApplicantIDs(ctx context.Context, campaignID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&applicationModel{}).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Pluck("influencer_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) ArchiveCampaignsPastEndDate(ctx context.Context, now time.Time, limit int) ([]ports.ExpirationResult, error) {
	if limit <= 0 {
		limit = 100
	}

	var archived []ports.ExpirationResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []campaignModel
		err := tx.
			Where("status = ?", string(entities.CampaignStatusPublished)).
			Where("ends_at IS NOT NULL AND ends_at < ?", now.UTC()).
			Order("ends_at").
			Limit(limit).
			Find(&rows).
			Error
		if err != nil {
			return err
		}

		for _, row := range rows {
			result := tx.
				Model(&campaignModel{}).
				Where("campaign_id = ? AND status = ?", row.CampaignID, string(entities.CampaignStatusPublished)).
				Updates(map[string]any{
					"status":      string(entities.CampaignStatusArchived),
					"archived_at": now.UTC(),
					"updated_at":  now.UTC(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				continue
			}

			envelope := ports.EventEnvelope{
				EventID:        uuid.NewString(),
				EventType:      archivedEventType,
				SourceService:  sourceService,
				OccurredAtUTC:  now.UTC(),
				EntityType:     "campaign",
				EntityID:       row.CampaignID,
				PayloadVersion: 1,
				Payload:        map[string]string{"brand_id": row.BrandID},
			}
			payload, err := json.Marshal(envelope)
			if err != nil {
				return err
			}
			outboxRow := outboxModel{
				OutboxID:     uuid.NewString(),
				EventType:    envelope.EventType,
				PartitionKey: row.CampaignID,
				Payload:      payload,
				Status:       outboxStatusPending,
				CreatedAt:    now.UTC(),
			}
			if err := tx.Create(&outboxRow).Error; err != nil {
				if isUniqueViolation(err) {
					continue
				}
				return err
			}
			archived = append(archived, ports.ExpirationResult{
				CampaignID: row.CampaignID,
				BrandID:    row.BrandID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return archived, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	out := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	publishedAt = publishedAt.UTC()
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).
		Error
}

func (r *Repository) hydrateInfluencers(ctx context.Context, rows []influencerModel) ([]entities.Influencer, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.InfluencerID)
	}

	var stats []platformStatModel
	if err := r.db.WithContext(ctx).Where("influencer_id IN ?", ids).Order("id").Find(&stats).Error; err != nil {
		return nil, err
	}
	var pricing []pricePointModel
	if err := r.db.WithContext(ctx).Where("influencer_id IN ?", ids).Order("id").Find(&pricing).Error; err != nil {
		return nil, err
	}

	statsByInfluencer := map[string][]platformStatModel{}
	for _, stat := range stats {
		statsByInfluencer[stat.InfluencerID] = append(statsByInfluencer[stat.InfluencerID], stat)
	}
	pricingByInfluencer := map[string][]pricePointModel{}
	for _, point := range pricing {
		pricingByInfluencer[point.InfluencerID] = append(pricingByInfluencer[point.InfluencerID], point)
	}

	out := make([]entities.Influencer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity(statsByInfluencer[row.InfluencerID], pricingByInfluencer[row.InfluencerID]))
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ ports.InfluencerRepository = (*Repository)(nil)
var _ ports.CampaignRepository = (*Repository)(nil)
var _ ports.ApplicationRepository = (*Repository)(nil)
var _ ports.ExpirationRepository = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
