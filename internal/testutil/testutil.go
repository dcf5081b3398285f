// Package testutil provides shared utilities for testing.
package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/palemoky/tinci/internal/database"
	"github.com/palemoky/tinci/internal/jyutping"
	"github.com/palemoky/tinci/internal/loader"
	"github.com/palemoky/tinci/internal/rhyme"
	"github.com/palemoky/tinci/internal/tools"
)

// SetupTestDB creates an in-memory SQLite database with migrations applied.
// Returns the DB wrapper and Repository. Automatically cleans up on test completion.
func SetupTestDB(t testing.TB) (*database.DB, *database.Repository) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory database")

	// A second pooled connection would see an empty database.
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.NewDBFromGorm(gormDB)
	require.NoError(t, db.Migrate(), "Failed to run migrations")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, database.NewRepository(db)
}

// SetupTestGin creates a test Gin engine with test mode enabled.
func SetupTestGin() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// StubRomanizer resolves characters from a fixed map. The first reading is
// the preferred one.
type StubRomanizer map[string][]string

// Romanize implements jyutping.Romanizer.
func (s StubRomanizer) Romanize(text string) []jyutping.Pair {
	var out []jyutping.Pair
	for _, r := range text {
		p := jyutping.Pair{Character: string(r)}
		if rs := s[string(r)]; len(rs) > 0 {
			p.Jyutping = rs[0]
		}
		out = append(out, p)
	}
	return out
}

// Readings implements jyutping.ReadingSource.
func (s StubRomanizer) Readings(char string) []string {
	return s[char]
}

// DefaultCorpus builds the corpus compiled into the binaries.
func DefaultCorpus(t testing.TB) *rhyme.Corpus {
	t.Helper()

	table, err := loader.DefaultTable()
	require.NoError(t, err)
	c, err := table.Corpus()
	require.NoError(t, err)
	return c
}

// DefaultLexicon builds the romanizer for DefaultCorpus without the OpenCC
// fallback, so lookups do not depend on the conversion dictionaries.
func DefaultLexicon(t testing.TB, c *rhyme.Corpus) *jyutping.Lexicon {
	t.Helper()

	lex, err := loader.NewRomanizer(c, "", jyutping.WithVariants(nil))
	require.NoError(t, err)
	return lex
}

// NewTestService wires a tool service over the compiled-in data.
func NewTestService(t testing.TB, engineOpts ...rhyme.EngineOption) *tools.Service {
	t.Helper()

	c := DefaultCorpus(t)
	lex := DefaultLexicon(t, c)
	return tools.NewService(rhyme.NewEngine(c, lex, engineOpts...), lex)
}
