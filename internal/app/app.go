// Package app assembles the lookup service from configuration. The server
// and the command line tool share it.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/palemoky/tinci/internal/config"
	"github.com/palemoky/tinci/internal/database"
	"github.com/palemoky/tinci/internal/loader"
	"github.com/palemoky/tinci/internal/logger"
	"github.com/palemoky/tinci/internal/rhyme"
	"github.com/palemoky/tinci/internal/tools"
)

// App holds the wired service and, for SQLite sources, the open snapshot.
type App struct {
	Service *tools.Service
	Engine  *rhyme.Engine
	DB      *database.DB
	Repo    *database.Repository
}

// New loads the corpus named by cfg and builds the service over it.
func New(cfg *config.Config) (*App, error) {
	a := &App{}

	corpus, err := a.loadCorpus(cfg.Corpus)
	if err != nil {
		a.Close()
		return nil, err
	}

	lex, err := loader.NewRomanizer(corpus, cfg.Corpus.ReadingsPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load readings: %w", err)
	}

	a.Engine = rhyme.NewEngine(corpus, lex,
		rhyme.WithLimits(cfg.Rhyme.DefaultLimit, cfg.Rhyme.MaxLimit),
		rhyme.WithStrictPolyphony(cfg.Rhyme.StrictPolyphony),
	)
	a.Service = tools.NewService(a.Engine, lex, tools.WithDefaultSystem(cfg.System()))

	logger.Named("app").Info("Corpus loaded",
		zap.String("source", cfg.Corpus.Source),
		zap.Int("finals", len(corpus.Finals())),
		zap.Int("entries", corpus.Size()),
		zap.Int("readings", lex.Size()),
	)
	return a, nil
}

func (a *App) loadCorpus(cfg config.CorpusConfig) (*rhyme.Corpus, error) {
	switch cfg.Source {
	case config.SourceJSON:
		table, err := loader.LoadTableFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		return table.Corpus()

	case config.SourceSQLite:
		db, err := database.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot: %w", err)
		}
		a.DB = db
		a.Repo = database.NewRepository(db)

		corpus, err := a.Repo.LoadCorpus()
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		return corpus, nil

	default:
		table, err := loader.DefaultTable()
		if err != nil {
			return nil, err
		}
		return table.Corpus()
	}
}

// Repository returns the snapshot repository, or an untyped nil when the
// corpus was not read from SQLite.
func (a *App) Repository() database.RepositoryInterface {
	if a.Repo == nil {
		return nil
	}
	return a.Repo
}

// Close releases the snapshot connection, if any.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
		a.DB = nil
	}
}
