// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	accessrequeststore "github.com/dalemusser/shelterhub/internal/app/store/accessrequests"
	adoptionrequeststore "github.com/dalemusser/shelterhub/internal/app/store/adoptionrequests"
	assignmentstore "github.com/dalemusser/shelterhub/internal/app/store/assignments"
	eventstore "github.com/dalemusser/shelterhub/internal/app/store/events"
	lookupstore "github.com/dalemusser/shelterhub/internal/app/store/lookups"
	petphotostore "github.com/dalemusser/shelterhub/internal/app/store/petphotos"
	petstore "github.com/dalemusser/shelterhub/internal/app/store/pets"
	shelterstore "github.com/dalemusser/shelterhub/internal/app/store/shelters"
	userstore "github.com/dalemusser/shelterhub/internal/app/store/users"
	vaccinationstore "github.com/dalemusser/shelterhub/internal/app/store/vaccinations"
	vaccinestore "github.com/dalemusser/shelterhub/internal/app/store/vaccines"
	"github.com/dalemusser/shelterhub/internal/app/system/timeouts"
)

// ConnectDB establishes the MongoDB connection used by the whole app.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema reconciles indexes for every collection and seeds the lookup
// tables. All operations are idempotent, so this runs at every startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	ensurers := []struct {
		name   string
		ensure func(context.Context) error
	}{
		{"users", userstore.New(db).EnsureIndexes},
		{"assignments", assignmentstore.New(db).EnsureIndexes},
		{"shelters", shelterstore.New(db).EnsureIndexes},
		{"pets", petstore.New(db).EnsureIndexes},
		{"adoption_requests", adoptionrequeststore.New(db).EnsureIndexes},
		{"vaccines", vaccinestore.New(db).EnsureIndexes},
		{"vaccinations", vaccinationstore.New(db).EnsureIndexes},
		{"events", eventstore.New(db).EnsureIndexes},
		{"pet_photos", petphotostore.New(db).EnsureIndexes},
		{"shelter_access_requests", accessrequeststore.New(db).EnsureIndexes},
	}
	for _, e := range ensurers {
		if err := e.ensure(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", e.name, err)
		}
		zap.L().Debug("indexes ensured", zap.String("collection", e.name))
	}

	if err := lookupstore.New(db).Seed(ctx); err != nil {
		return fmt.Errorf("seed lookup tables: %w", err)
	}
	logger.Info("schema ensured and lookup tables seeded")
	return nil
}
