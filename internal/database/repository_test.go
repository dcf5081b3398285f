package database

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbauerster/mpb/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/palemoky/tinci/internal/rhyme"
	"github.com/palemoky/tinci/internal/tone"
)

func setupTestDB(t *testing.T) (*DB, *Repository) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection to :memory: would open a separate database
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := &DB{DB: gormDB}
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	return db, NewRepository(db)
}

func testCorpus(t *testing.T, groups rhyme.GroupTable) *rhyme.Corpus {
	t.Helper()

	entry := func(char, jp string) rhyme.Entry {
		e, err := rhyme.NewEntry(char, jp)
		require.NoError(t, err)
		return e
	}

	c, err := rhyme.NewCorpus(groups, []rhyme.Bucket{
		{Final: "oi", Entries: []rhyme.Entry{
			entry("來", "loi4"), entry("愛", "oi3"), entry("開", "hoi1"), entry("在", "zoi6"),
		}},
		{Final: "ou", Entries: []rhyme.Entry{
			entry("好", "hou2"), entry("好", "hou3"), entry("高", "gou1"),
		}},
		{Final: "aa", Entries: []rhyme.Entry{entry("家", "gaa1")}},
	})
	require.NoError(t, err)
	return c
}

func TestMigrate(t *testing.T) {
	db, _ := setupTestDB(t)

	version, err := db.GetSchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)

	// running twice is harmless
	require.NoError(t, db.Migrate())
}

func TestReplaceAndLoadCorpus(t *testing.T) {
	_, repo := setupTestDB(t)
	orig := testCorpus(t, rhyme.DefaultGroupTable())

	require.NoError(t, repo.ReplaceCorpus(orig, "test", 2, nil))

	loaded, err := repo.LoadCorpus()
	require.NoError(t, err)

	assert.Equal(t, orig.Finals(), loaded.Finals())
	assert.Equal(t, orig.Size(), loaded.Size())
	for _, f := range orig.Finals() {
		assert.Equal(t, orig.Entries(f), loaded.Entries(f), "bucket %s keeps its order", f)
	}
	assert.Equal(t, orig.Groups(), loaded.Groups())
}

func TestReplaceCorpusKeepsCustomGroupTable(t *testing.T) {
	_, repo := setupTestDB(t)

	groups := rhyme.DefaultGroupTable()
	groups[tone.System0243][9] = "9"
	require.NoError(t, repo.ReplaceCorpus(testCorpus(t, groups), "test", 0, nil))

	loaded, err := repo.LoadGroupTable()
	require.NoError(t, err)
	assert.Equal(t, "9", loaded.Of(9, tone.System0243))
}

func TestReplaceCorpusOverwrites(t *testing.T) {
	_, repo := setupTestDB(t)
	require.NoError(t, repo.ReplaceCorpus(testCorpus(t, rhyme.DefaultGroupTable()), "first", 0, nil))

	e, err := rhyme.NewEntry("家", "gaa1")
	require.NoError(t, err)
	small, err := rhyme.NewCorpus(rhyme.DefaultGroupTable(), []rhyme.Bucket{{Final: "aa", Entries: []rhyme.Entry{e}}})
	require.NoError(t, err)

	p := mpb.New(mpb.WithOutput(io.Discard))
	require.NoError(t, repo.ReplaceCorpus(small, "second", 10, p))
	p.Wait()

	count, err := repo.CountEntries()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	finals, err := repo.ListFinals()
	require.NoError(t, err)
	assert.Equal(t, []string{"aa"}, finals)
}

func TestLoadEmptySnapshot(t *testing.T) {
	_, repo := setupTestDB(t)

	groups, err := repo.LoadGroupTable()
	require.NoError(t, err)
	assert.Equal(t, rhyme.DefaultGroupTable(), groups)

	c, err := repo.LoadCorpus()
	require.NoError(t, err)
	assert.Equal(t, 0, c.Size())
}

func TestLoadCorpusRejectsBadRows(t *testing.T) {
	db, repo := setupTestDB(t)
	require.NoError(t, db.Create(&RhymeEntry{Final: "oi", Position: 0, Character: "家", Jyutping: "gaa1", Tone: 1}).Error)

	_, err := repo.LoadCorpus()
	assert.ErrorContains(t, err, `listed under "oi"`)
}

func TestGetStatistics(t *testing.T) {
	_, repo := setupTestDB(t)
	require.NoError(t, repo.ReplaceCorpus(testCorpus(t, rhyme.DefaultGroupTable()), "test", 0, nil))

	stats, err := repo.GetStatistics()
	require.NoError(t, err)

	assert.Equal(t, 8, stats.TotalEntries)
	assert.Equal(t, 3, stats.TotalFinals)
	assert.Equal(t, 7, stats.TotalCharacters)
	assert.Equal(t, FinalStats{Final: "oi", Count: 4}, stats.EntriesByFinal[0])
	assert.Equal(t, ToneStats{Tone: 1, Count: 3}, stats.EntriesByTone[0])
}

func BenchmarkLoadCorpus(b *testing.B) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(b, err)
	sqlDB, err := gormDB.DB()
	require.NoError(b, err)
	sqlDB.SetMaxOpenConns(1)
	db := &DB{DB: gormDB}
	require.NoError(b, db.Migrate())
	repo := NewRepository(db)

	var entries []rhyme.Entry
	for i := range 2000 {
		e, err := rhyme.NewEntry(string(rune(0x4E00+i)), "zoi3")
		require.NoError(b, err)
		entries = append(entries, e)
	}
	c, err := rhyme.NewCorpus(rhyme.DefaultGroupTable(), []rhyme.Bucket{{Final: "oi", Entries: entries}})
	require.NoError(b, err)
	require.NoError(b, repo.ReplaceCorpus(c, "bench", 0, nil))

	for b.Loop() {
		_, _ = repo.LoadCorpus()
	}
}
