package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/mailer"
	"github.com/goliatone/go-accounts/middleware/guard"
)

type serverConfig struct {
	Addr  string `env:"SERVER_ADDR" envDefault:":3000"`
	DSN   string `env:"DSN" envDefault:"file:accounts.db?cache=shared"`
	Debug bool   `env:"DEBUG" envDefault:"false"`
	SMTP  mailer.Config
}

func main() {
	ctx := context.Background()

	var srvCfg serverConfig
	if err := env.Parse(&srvCfg); err != nil {
		log.Fatal(err)
	}

	cfg, err := accounts.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := openDatabase(ctx, srvCfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	repo := accounts.NewRepositoryManager(db)
	repo.MustValidate()

	codec := accounts.NewTokenCodec(cfg)

	manager := accounts.NewManager(repo, codec, cfg)
	if srvCfg.SMTP.Host != "" {
		manager.WithMailer(mailer.New(srvCfg.SMTP))
	}

	sessionGuard := guard.New(guard.Config{
		Codec: codec,
		Repo:  repo,
		Cfg:   cfg,
	})

	app := fiber.New(fiber.Config{
		AppName:      "accounts",
		ErrorHandler: accounts.ErrorHandler(accounts.DefaultLogger()),
	})

	controller := accounts.NewController(
		accounts.WithManager(manager),
		accounts.WithRepository(repo),
		accounts.WithGuard(sessionGuard),
	)
	controller.RegisterRoutes(app)

	go func() {
		if err := app.Listen(srvCfg.Addr); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// persistenceConfig adapts the flat server config to the getter interface the
// persistence client expects.
type persistenceConfig struct {
	dsn   string
	debug bool
}

func (p persistenceConfig) GetDebug() bool                { return p.debug }
func (p persistenceConfig) GetDriver() string             { return sqliteshim.ShimName }
func (p persistenceConfig) GetServer() string             { return p.dsn }
func (p persistenceConfig) GetDatabase() string           { return "" }
func (p persistenceConfig) GetDSN() string                { return p.dsn }
func (p persistenceConfig) GetPingTimeout() time.Duration { return 5 * time.Second }
func (p persistenceConfig) GetOtelIdentifier() string     { return "" }

func openDatabase(ctx context.Context, srvCfg serverConfig) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, srvCfg.DSN)
	if err != nil {
		return nil, err
	}

	persistence.RegisterModel((*accounts.User)(nil))

	client, err := persistence.New(persistenceConfig{dsn: srvCfg.DSN, debug: srvCfg.Debug}, sqldb, sqlitedialect.New())
	if err != nil {
		return nil, err
	}

	migrationsFS, err := fs.Sub(accounts.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return nil, err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("sqlite"),
	)
	if err := client.ValidateDialects(ctx); err != nil {
		return nil, err
	}

	if err := client.Migrate(ctx); err != nil {
		return nil, err
	}

	return client.DB(), nil
}
