package recommendationservice

import (
	"log/slog"

	httpadapter "sponza/contexts/matchmaking/recommendation-service/adapters/http"
	"sponza/contexts/matchmaking/recommendation-service/adapters/memory"
	"sponza/contexts/matchmaking/recommendation-service/application"
	"sponza/contexts/matchmaking/recommendation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Influencers  ports.InfluencerRepository
	Campaigns    ports.CampaignRepository
	Applications ports.ApplicationRepository
	Clock        ports.Clock
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Influencers:  deps.Influencers,
		Campaigns:    deps.Campaigns,
		Applications: deps.Applications,
		Clock:        deps.Clock,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Influencers:  store,
		Campaigns:    store,
		Applications: store,
		Clock:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
