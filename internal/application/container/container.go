// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/roulettesim/roulettesim-go/internal/application/services"
	"github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/caching/manager"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/persistence/database"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/persistence/visitorstate"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/upstream"
	"github.com/roulettesim/roulettesim-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies.
type Container struct {
	// Application services (stateless singletons)
	SessionService        *services.SessionService
	AnalyticsService      *services.AnalyticsService
	GameService           *services.GameService
	RecommendationService *services.RecommendationService
	SafetyService         *services.SafetyService
	ExperimentService     *services.ExperimentService
	AuthService           *services.AuthService

	// Infrastructure dependencies
	Logger       *logging.ChanneledLogger
	CacheManager *manager.Manager
	DB           *database.DB
	VisitorStore *visitorstate.Store
	GeoResolver  upstream.GeoResolver
}

// NewContainer creates and wires all singleton services.
func NewContainer(db *database.DB, casinos []catalog.CasinoEntry, logger *logging.ChanneledLogger) *Container {
	cacheManager := manager.NewManager(logger)
	visitorStore := visitorstate.NewStore(db)

	slotsLaunch := upstream.NewSlotsLaunchClient(upstream.SlotsLaunchConfig{
		APIURL:       config.SlotsLaunchAPIURL,
		Token:        config.SlotsLaunchAPIToken,
		PerPage:      config.SlotsLaunchPerPage,
		GameType:     config.SlotsLaunchGameType,
		Origin:       config.OriginDomain,
		MinInterval:  config.UpstreamMinInterval,
		FetchTimeout: config.UpstreamFetchTimeout,
	}, logger)

	var geoResolver upstream.GeoResolver
	if config.GeoAPIURL != "" {
		geoResolver = upstream.NewCachedGeoResolver(
			upstream.NewHTTPGeoResolver(config.GeoAPIURL, config.GeoTimeout, logger),
			config.GeoStaleness,
		)
	}

	scorer := services.NewConversionScorer(config.SignalWindow)
	sessionService := services.NewSessionService(cacheManager, visitorStore, scorer, logger)

	return &Container{
		SessionService:        sessionService,
		AnalyticsService:      services.NewAnalyticsService(sessionService, logger),
		GameService:           services.NewGameService(cacheManager, slotsLaunch, logger),
		RecommendationService: services.NewRecommendationService(casinos, scorer, logger),
		SafetyService:         services.NewSafetyService(visitorStore, sessionService, logger),
		ExperimentService:     services.NewExperimentService(visitorStore, logger),
		AuthService:           services.NewAuthService(logger),

		Logger:       logger,
		CacheManager: cacheManager,
		DB:           db,
		VisitorStore: visitorStore,
		GeoResolver:  geoResolver,
	}
}
