package app

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"TodoBoard/internal/cache"
	"TodoBoard/internal/config"
	"TodoBoard/internal/repo"
	"TodoBoard/internal/seed"
	"TodoBoard/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-pkgz/lgr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	log    lgr.L
	pg     *pgxpool.Pool
	sqlite *sql.DB
	redis  *redis.Client
	svc    *service.TodoService
	router *gin.Engine
}

func New(ctx context.Context, cfg config.Config, log lgr.L) (*App, error) {
	a := &App{cfg: cfg, log: log}

	todoRepo, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	var todoCache *cache.TodoCache
	if cfg.Redis.Enabled() {
		rdb, err := newRedis(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.redis = rdb
		todoCache = cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration())
		log.Logf("[INFO] redis cache enabled at %s", cfg.Redis.Addr)
	} else {
		log.Logf("[INFO] redis not configured, todo cache disabled")
	}

	loc, err := cfg.App.Location()
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("timezone: %w", err)
	}
	a.svc = service.NewTodoService(todoRepo, todoCache,
		service.WithClock(service.LocalClock(loc)),
		service.WithLogger(log),
	)

	if cfg.App.SeedDemo {
		n, err := a.svc.SeedIfEmpty(ctx, seed.Demo(a.svc.Now()))
		if err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("seed demo todos: %w", err)
		}
		if n > 0 {
			log.Logf("[INFO] seeded %d demo todos", n)
		}
	}

	a.router = newRouter(cfg, a.svc)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pg != nil {
		a.pg.Close()
	}
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			return fmt.Errorf("sqlite close: %w", err)
		}
	}
	return nil
}

func (a *App) openStorage(ctx context.Context) (repo.TodoRepo, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := repo.OpenSQLite(a.cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.sqlite = db
		if err := repo.Migrate(db, "sqlite3", filepath.Join(a.cfg.Storage.MigrationsDir, "sqlite")); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.log.Logf("[INFO] using sqlite storage at %s", a.cfg.Storage.SQLitePath)
		return repo.NewSQLiteTodoRepo(db), nil
	default:
		pool, err := newPostgres(ctx, a.cfg.Storage.PGDSN)
		if err != nil {
			return nil, err
		}
		a.pg = pool
		if err := runPGMigrations(pool, filepath.Join(a.cfg.Storage.MigrationsDir, "postgres")); err != nil {
			pool.Close()
			return nil, err
		}
		a.log.Logf("[INFO] using postgres storage")
		return repo.NewPGTodoRepo(pool), nil
	}
}

func newPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, fmt.Errorf("redis options: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// runPGMigrations runs goose over a database/sql handle borrowed from the pool.
func runPGMigrations(pool *pgxpool.Pool, migrationsDir string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return repo.Migrate(db, "postgres", migrationsDir)
}

func newRouter(cfg config.Config, svc *service.TodoService) *gin.Engine {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, svc)
	return r
}
