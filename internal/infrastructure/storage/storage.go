package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sngm3741/restaurant-recs/api/internal/config"
	"github.com/sngm3741/restaurant-recs/api/internal/infrastructure/memory"
	mongostore "github.com/sngm3741/restaurant-recs/api/internal/infrastructure/mongo"
	"github.com/sngm3741/restaurant-recs/api/internal/infrastructure/postgres"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Stores bundles the repositories of the selected driver together with the
// connection lifecycle.
type Stores struct {
	Driver      config.StoreDriver
	Submissions application.SubmissionRepository
	Restaurants application.RestaurantRepository

	ping  func(context.Context) error
	close func(context.Context) error
}

// NewStores assembles Stores from already opened repositories. ping and
// closeFn may be nil.
func NewStores(driver config.StoreDriver, submissions application.SubmissionRepository, restaurants application.RestaurantRepository, ping, closeFn func(context.Context) error) *Stores {
	return &Stores{
		Driver:      driver,
		Submissions: submissions,
		Restaurants: restaurants,
		ping:        ping,
		close:       closeFn,
	}
}

// Ping checks that the backing store is reachable.
func (s *Stores) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the underlying connection pool.
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the configured store and prepares indexes or schema.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Stores, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.StoreDriver {
	case config.StoreMongo:
		return openMongo(ctx, cfg, logger)
	case config.StorePostgres:
		return openPostgres(ctx, cfg, logger)
	case config.StoreMemory:
		logger.Info("using in-memory store")
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

// NewMemory returns process-local stores.
func NewMemory() *Stores {
	return NewStores(config.StoreMemory, memory.NewSubmissionRepository(), memory.NewRestaurantRepository(), nil, nil)
}

func openMongo(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Stores, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := mongostore.EnsureIndexes(ctx, db, cfg.SubmissionCollection, cfg.RestaurantCollection); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	logger.Info("connected to mongo", "database", cfg.MongoDatabase)

	ping := func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
	return NewStores(config.StoreMongo,
		mongostore.NewSubmissionRepository(db, cfg.SubmissionCollection),
		mongostore.NewRestaurantRepository(db, cfg.RestaurantCollection),
		ping, client.Disconnect), nil
}

func openPostgres(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Stores, error) {
	db, err := sql.Open("pgx", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("connected to postgres")

	closeFn := func(context.Context) error {
		return db.Close()
	}
	return NewStores(config.StorePostgres,
		postgres.NewSubmissionRepository(db),
		postgres.NewRestaurantRepository(db),
		db.PingContext, closeFn), nil
}
