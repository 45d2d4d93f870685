package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/user-service/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	Client *mongo.Client
	DB     *mongo.Database
}

// NewApp создаёт новый экземпляр App: подключение к MongoDB передаётся
// дальше явным хендлом, без глобального состояния
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: log,
		Client: client,
		DB:     client.Database(cfg.Database.Name),
	}

	return app, nil
}

// Close отключает клиента от БД
func (a *App) Close(ctx context.Context) error {
	disconnectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return a.Client.Disconnect(disconnectCtx)
}
