package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/doodle-garden/internal/classifier"
	"github.com/KirkDiggler/doodle-garden/internal/config"
	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/orchestrators/growth"
	"github.com/KirkDiggler/doodle-garden/internal/orchestrators/hatchery"
	"github.com/KirkDiggler/doodle-garden/internal/orchestrators/roster"
	"github.com/KirkDiggler/doodle-garden/internal/quality"
	"github.com/KirkDiggler/doodle-garden/internal/redis"
	rosterrepo "github.com/KirkDiggler/doodle-garden/internal/repositories/roster"
)

// app is the explicitly wired pipeline shared by the commands
type app struct {
	repo     rosterrepo.Repository
	roster   *roster.Roster
	hatchery hatchery.Service
	growth   growth.Service
	closers  []func() error
}

// current is opened on first use and closed by closeApp
var current *app

// openStore opens the configured roster store without loading the roster
func openStore(ctx context.Context) (*app, error) {
	if current != nil {
		return current, nil
	}
	if cfg == nil {
		return nil, errors.FailedPrecondition("configuration not loaded")
	}

	a := &app{}
	repo, err := a.openRepository(ctx, cfg)
	if err != nil {
		a.close()
		return nil, err
	}
	a.repo = repo

	current = a
	return a, nil
}

// openApp wires the roster and services on top of the store
func openApp(ctx context.Context) (*app, error) {
	a, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	if a.roster != nil {
		return a, nil
	}

	r, err := roster.New(ctx, &roster.Config{Repository: a.repo})
	if err != nil {
		return nil, err
	}

	cls, err := classifier.New(nil)
	if err != nil {
		return nil, err
	}
	hatch, err := hatchery.NewOrchestrator(&hatchery.Config{
		Roster:       r,
		Classifier:   cls,
		SnapshotSize: drawing.DefaultSnapshotSize,
	})
	if err != nil {
		return nil, err
	}

	scorer, err := quality.New(nil)
	if err != nil {
		return nil, err
	}
	grow, err := growth.NewOrchestrator(&growth.Config{
		Roster: r,
		Scorer: scorer,
	})
	if err != nil {
		return nil, err
	}

	a.roster = r
	a.hatchery = hatch
	a.growth = grow
	return a, nil
}

// closeApp releases store connections of the current app
func closeApp() {
	if current == nil {
		return
	}
	current.close()
	current = nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("failed to close store", "error", err.Error())
		}
	}
	a.closers = nil
}

func (a *app) openRepository(ctx context.Context, c *config.Config) (rosterrepo.Repository, error) {
	switch c.Store {
	case config.StoreRedis:
		client, err := redis.NewClient(c.RedisAddr, &redis.Options{
			MaxRetries: c.RedisMaxRetries,
			UseTLS:     c.RedisTLS,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable").
				WithMeta("addr", c.RedisAddr)
		}
		return rosterrepo.NewRedis(&rosterrepo.RedisConfig{Client: client, Key: c.RosterKey})

	case config.StoreSQLite, config.StorePostgres:
		driver, source, dialect := "sqlite", c.SQLiteDSN(), rosterrepo.DialectSQLite
		if c.Store == config.StorePostgres {
			driver, source, dialect = "postgres", c.DSN, rosterrepo.DialectPostgres
		}
		if c.Store == config.StoreSQLite && c.DSN == "" {
			if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
				return nil, errors.Wrapf(err, "failed to create data directory").WithMeta("path", c.DataDir)
			}
		}
		db, err := sql.Open(driver, source)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s database", c.Store)
		}
		a.closers = append(a.closers, db.Close)
		if err := db.PingContext(ctx); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "database is unreachable")
		}
		return rosterrepo.NewSQL(ctx, &rosterrepo.SQLConfig{DB: db, Dialect: dialect, Key: c.RosterKey})

	default:
		return rosterrepo.NewFile(&rosterrepo.FileConfig{Dir: c.DataDir, Key: c.RosterKey})
	}
}
