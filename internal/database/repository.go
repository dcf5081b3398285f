package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/palemoky/tinci/internal/logger"
	"github.com/palemoky/tinci/internal/rhyme"
)

// DefaultBatchSize is the number of rows per insert statement.
const DefaultBatchSize = 500

// RepositoryInterface defines the interface for repository operations
type RepositoryInterface interface {
	ReplaceCorpus(c *rhyme.Corpus, source string, batchSize int, progress *mpb.Progress) error
	LoadCorpus() (*rhyme.Corpus, error)
	LoadGroupTable() (rhyme.GroupTable, error)
	CountEntries() (int, error)
	ListFinals() ([]string, error)
	GetStatistics() (*Statistics, error)
}

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// ReplaceCorpus overwrites the snapshot with c in one transaction: every
// existing row is removed, the entries are inserted bucket by bucket and
// the tone group table is stored as metadata.
// progress may be nil.
func (r *Repository) ReplaceCorpus(c *rhyme.Corpus, source string, batchSize int, progress *mpb.Progress) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	rows := make([]RhymeEntry, 0, c.Size())
	for _, f := range c.Finals() {
		for i, e := range c.Entries(f) {
			rows = append(rows, RhymeEntry{
				Final:     f,
				Position:  i,
				Character: e.Character,
				Jyutping:  e.Jyutping,
				Tone:      e.Syllable.Tone,
			})
		}
	}

	groups, err := json.Marshal(c.Groups())
	if err != nil {
		return fmt.Errorf("failed to encode tone groups: %w", err)
	}
	sourceJSON, err := json.Marshal(source)
	if err != nil {
		return fmt.Errorf("failed to encode source: %w", err)
	}

	var bar *mpb.Bar
	if progress != nil && len(rows) > 0 {
		bar = progress.AddBar(int64(len(rows)),
			mpb.PrependDecorators(
				decor.Name("Inserting entries: ", decor.WC{W: 19, C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Percentage(decor.WC{W: 5}),
				decor.Name(" | "),
				decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 6}),
			),
		)
	}

	logger.Named("database").Info("Replacing corpus snapshot",
		zap.Int("entries", len(rows)),
		zap.Int("finals", len(c.Finals())),
		zap.Int("batch_size", batchSize),
	)

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&RhymeEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear entries: %w", err)
		}

		for i := 0; i < len(rows); i += batchSize {
			batch := rows[i:min(i+batchSize, len(rows))]
			if err := tx.Create(&batch).Error; err != nil {
				return fmt.Errorf("failed to insert entries %d-%d: %w", i, i+len(batch), err)
			}
			if bar != nil {
				bar.IncrBy(len(batch))
			}
		}

		if err := r.db.setMetadata(tx, MetaToneGroups, groups); err != nil {
			return err
		}
		return r.db.setMetadata(tx, MetaSource, sourceJSON)
	})
	if err != nil {
		if bar != nil {
			bar.Abort(false)
		}
		return err
	}
	return nil
}

// LoadGroupTable reads the tone group table. A snapshot without one gets
// the default table.
func (r *Repository) LoadGroupTable() (rhyme.GroupTable, error) {
	var meta Metadata
	err := r.db.Where("key = ?", MetaToneGroups).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rhyme.DefaultGroupTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tone groups: %w", err)
	}

	var groups rhyme.GroupTable
	if err := json.Unmarshal(meta.Value, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode tone groups: %w", err)
	}
	if err := groups.Validate(); err != nil {
		return nil, err
	}
	return groups, nil
}

// LoadCorpus rebuilds the corpus from the snapshot, keeping bucket order.
func (r *Repository) LoadCorpus() (*rhyme.Corpus, error) {
	groups, err := r.LoadGroupTable()
	if err != nil {
		return nil, err
	}

	var rows []RhymeEntry
	if err := r.db.Order("final ASC, position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	var buckets []rhyme.Bucket
	for _, row := range rows {
		e, err := rhyme.NewEntry(row.Character, row.Jyutping)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", row.ID, err)
		}
		if n := len(buckets); n == 0 || buckets[n-1].Final != row.Final {
			buckets = append(buckets, rhyme.Bucket{Final: row.Final})
		}
		last := &buckets[len(buckets)-1]
		last.Entries = append(last.Entries, e)
	}

	return rhyme.NewCorpus(groups, buckets)
}

// CountEntries returns the number of rows in the snapshot.
func (r *Repository) CountEntries() (int, error) {
	var count int64
	err := r.db.Model(&RhymeEntry{}).Count(&count).Error
	return int(count), err
}

// ListFinals returns the distinct finals in ascending order.
func (r *Repository) ListFinals() ([]string, error) {
	var finals []string
	err := r.db.Model(&RhymeEntry{}).Distinct("final").Order("final ASC").Pluck("final", &finals).Error
	return finals, err
}

// GetStatistics returns counts per final and per tone.
func (r *Repository) GetStatistics() (*Statistics, error) {
	stats := &Statistics{}

	var total int64
	if err := r.db.Model(&RhymeEntry{}).Count(&total).Error; err != nil {
		return nil, err
	}
	stats.TotalEntries = int(total)

	var chars int64
	if err := r.db.Model(&RhymeEntry{}).Distinct("character").Count(&chars).Error; err != nil {
		return nil, err
	}
	stats.TotalCharacters = int(chars)

	if err := r.db.Model(&RhymeEntry{}).
		Select("final, COUNT(*) AS count").
		Group("final").
		Order("count DESC, final ASC").
		Scan(&stats.EntriesByFinal).Error; err != nil {
		return nil, err
	}
	stats.TotalFinals = len(stats.EntriesByFinal)

	if err := r.db.Model(&RhymeEntry{}).
		Select("tone, COUNT(*) AS count").
		Group("tone").
		Order("tone ASC").
		Scan(&stats.EntriesByTone).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
