package cmd

import (
	"log/slog"
	"net/http"

	httpin "medex/internal/adapters/in/http"
	"medex/internal/adapters/out/medexsync"
	"medex/internal/adapters/out/postgres"
	"medex/internal/adapters/out/rediscache"
	"medex/internal/adapters/out/woocommerce"
	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/application/usecases/queries"
	"medex/internal/core/ports"
	"medex/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// CompositionRoot wires the storefront sync relay.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	redisClient *redis.Client
	uowFactory  postgres.GormUnitOfWorkFactory
	httpClient  *http.Client
	logger      *slog.Logger

	storefront *woocommerce.Client
	backend    *medexsync.Client
}

// NewCompositionRoot builds the relay's adapters. A nil redisClient disables the
// storefront cache.
func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	httpClient := &http.Client{Timeout: config.OutboundTimeout}

	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		redisClient: redisClient,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		httpClient:  httpClient,
		logger:      logger,
		storefront: woocommerce.NewClient(config.WooCommerceURL, config.WooCommerceConsumerKey,
			config.WooCommerceConsumerSecret, httpClient, logger),
		backend: medexsync.NewClient(config.MedexAPIURL, config.MedexWooSecret, httpClient, logger),
	}
}

func (c *CompositionRoot) ledgerFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

// storefrontLookups returns the catalog and store directory, cached when redis is configured.
func (c *CompositionRoot) storefrontLookups() (ports.ProductCatalog, ports.StoreDirectory) {
	if c.redisClient == nil {
		return c.storefront, c.storefront
	}
	cache := rediscache.NewStorefrontCache(c.redisClient, c.storefront, c.storefront, c.config.StorefrontTTL, c.logger)
	return cache, cache
}

func (c *CompositionRoot) CreateSyncStorefrontOrderCommandHandler() *commands.SyncStorefrontOrderCommandHandler {
	catalog, stores := c.storefrontLookups()
	return commands.NewSyncStorefrontOrderCommandHandler(c.storefront, catalog, stores, c.backend, c.ledgerFactory(), c.logger)
}

func (c *CompositionRoot) CreatePushStorefrontStatusCommandHandler(
	syncer *commands.SyncStorefrontOrderCommandHandler,
) *commands.PushStorefrontStatusCommandHandler {
	return commands.NewPushStorefrontStatusCommandHandler(c.backend, syncer, c.ledgerFactory(), c.logger)
}

func (c *CompositionRoot) CreateProcessStorefrontEventCommandHandler(
	syncer *commands.SyncStorefrontOrderCommandHandler,
) *commands.ProcessStorefrontEventCommandHandler {
	pusher := c.CreatePushStorefrontStatusCommandHandler(syncer)
	return commands.NewProcessStorefrontEventCommandHandler(syncer, pusher, c.ledgerFactory(), c.logger)
}

func (c *CompositionRoot) CreatePruneSyncAttemptsCommandHandler() commands.PruneSyncAttemptsCommandHandler {
	return commands.NewPruneSyncAttemptsCommandHandler(c.ledgerFactory())
}

func (c *CompositionRoot) CreateGetSyncAttemptsQueryHandler() queries.GetSyncAttemptsQueryHandler {
	return queries.NewGetSyncAttemptsQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP server over one shared sync handler.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	syncer := c.CreateSyncStorefrontOrderCommandHandler()
	return httpin.NewServer(
		c.CreateProcessStorefrontEventCommandHandler(syncer),
		syncer,
		c.CreateGetSyncAttemptsQueryHandler(),
		woocommerce.DecodeOrder,
		c.config.WebhookSecret,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePruneSyncAttemptsCommandHandler(),
		c.config.LedgerRetention,
		c.config.LedgerPruneSpec,
		c.logger,
	)
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}
