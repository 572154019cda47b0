package integration_test

import (
	"log/slog"
	"os"

	"github.com/cinetick/cinetick/internal/app"
	"github.com/cinetick/cinetick/internal/mailer"
	"github.com/cinetick/cinetick/internal/notifier"
	"github.com/cinetick/cinetick/internal/payment"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App         *app.Application
	DB          *pgxpool.Pool
	RedisClient *redis.Client
	Mailer      *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	bookingNotifier, err := notifier.NewRedisNotifier(redisClient, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	mockMailer := mailer.NewMockMailer()

	application := app.NewApplication(
		cfg,
		logger,
		db,
		redisClient,
		mockMailer,
		payment.NewMockGateway(),
		bookingNotifier,
	)

	return &TestApp{
		App:         application,
		DB:          db,
		RedisClient: redisClient,
		Mailer:      mockMailer,
	}, nil
}
