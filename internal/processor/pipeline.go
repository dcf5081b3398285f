// Package processor validates a rhyme reference table and writes it to the
// SQLite snapshot.
package processor

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"github.com/palemoky/tinci/internal/database"
	"github.com/palemoky/tinci/internal/hanzi"
	"github.com/palemoky/tinci/internal/loader"
	"github.com/palemoky/tinci/internal/logger"
	"github.com/palemoky/tinci/internal/rhyme"
)

const (
	// Error reporting limits
	MaxErrorsToCollect = 100
	SampleErrorCount   = 5
)

// getOptimalConfig returns the work buffer size and default insert batch
// size for the machine.
func getOptimalConfig() (workBuffer, defaultBatch int) {
	switch cpuCount := runtime.NumCPU(); {
	case cpuCount <= 2:
		return 50, 200
	case cpuCount <= 8:
		return 100, 400
	default:
		return 300, 500
	}
}

// Processor validates table rows on a worker pool and replaces the snapshot.
type Processor struct {
	repo                 database.RepositoryInterface
	workers              int
	convertToTraditional bool
	batchSize            int
	output               io.Writer
}

// NewProcessor creates a new processor. With convertToTraditional set,
// simplified characters are stored in their traditional form.
func NewProcessor(repo database.RepositoryInterface, workers int, convertToTraditional bool) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	_, defaultBatch := getOptimalConfig()

	return &Processor{
		repo:                 repo,
		workers:              workers,
		convertToTraditional: convertToTraditional,
		batchSize:            defaultBatch,
		output:               os.Stderr,
	}
}

// SetBatchSize sets the batch size for database insertion
func (p *Processor) SetBatchSize(size int) {
	if size > 0 {
		p.batchSize = size
	}
}

// SetOutput redirects the progress bars. Use io.Discard to hide them.
func (p *Processor) SetOutput(w io.Writer) {
	p.output = w
}

// Process validates every row of table, drops repeated (character, reading)
// pairs and stores the result under source. Invalid rows are skipped and
// reported; an invalid tone group table aborts the import.
func (p *Processor) Process(table *loader.TableData, source string) (*Report, error) {
	groups, err := table.Groups()
	if err != nil {
		return nil, fmt.Errorf("invalid tone groups: %w", err)
	}

	work := flatten(table)
	if len(work) == 0 {
		return nil, fmt.Errorf("rhyme table has no entries")
	}
	report := &Report{Total: len(work)}
	log := logger.Named("import")
	log.Info("Importing rhyme table",
		zap.Int("entries", len(work)),
		zap.Int("workers", p.workers),
		zap.Int("batch_size", p.batchSize),
	)

	progress := mpb.New(
		mpb.WithWidth(60),
		mpb.WithRefreshRate(100*time.Millisecond),
		mpb.WithOutput(p.output),
	)
	bar := progress.AddBar(int64(len(work)),
		mpb.PrependDecorators(
			decor.Name("Validating: ", decor.WC{W: 19, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.Name(" | "),
			decor.AverageSpeed(0, "%.0f entries/s", decor.WC{W: 14}),
		),
	)

	results := p.validate(work, bar)

	buckets, dupes, errs := assemble(work, results)
	report.Duplicates = dupes
	report.Rejected = len(errs)
	if len(errs) > MaxErrorsToCollect {
		errs = errs[:MaxErrorsToCollect]
	}
	report.Errors = errs

	corpus, err := rhyme.NewCorpus(groups, buckets)
	if err != nil {
		progress.Wait()
		return report, fmt.Errorf("failed to build corpus: %w", err)
	}
	report.Imported = corpus.Size()
	report.Finals = len(corpus.Finals())

	if err := p.repo.ReplaceCorpus(corpus, source, p.batchSize, progress); err != nil {
		progress.Wait()
		return report, fmt.Errorf("batch insertion failed: %w", err)
	}
	progress.Wait()

	if report.Rejected > 0 {
		log.Warn("Some entries were rejected",
			zap.Int("rejected", report.Rejected),
			zap.Int("imported", report.Imported),
		)
		for i := 0; i < min(len(report.Errors), SampleErrorCount); i++ {
			log.Warn("Rejected entry", zap.Error(report.Errors[i]))
		}
	}
	log.Info("Import finished",
		zap.Int("imported", report.Imported),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("finals", report.Finals),
	)
	return report, nil
}

// validate runs processEntry over work on p.workers goroutines. The result
// slice is indexed like work.
func (p *Processor) validate(work []entryWork, bar *mpb.Bar) []entryResult {
	results := make([]entryResult, len(work))
	workBuffer, _ := getOptimalConfig()
	workCh := make(chan entryWork, workBuffer)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range workCh {
				e, err := p.processEntry(w)
				results[w.index] = entryResult{entry: e, err: err}
				bar.Increment()
			}
		}()
	}

	for _, w := range work {
		workCh <- w
	}
	close(workCh)
	wg.Wait()

	return results
}

func (p *Processor) processEntry(w entryWork) (rhyme.Entry, error) {
	char, ok := hanzi.SingleRune(w.data.Char)
	if char == "" || !ok {
		return rhyme.Entry{}, fmt.Errorf("finals.%s[%d]: %q is not a single character", w.final, w.pos, w.data.Char)
	}

	if p.convertToTraditional {
		converted, err := hanzi.ToTraditional(char)
		if err != nil {
			return rhyme.Entry{}, fmt.Errorf("finals.%s[%d]: failed to convert %s: %w", w.final, w.pos, char, err)
		}
		if c, ok := hanzi.SingleRune(converted); ok {
			char = c
		}
	}

	e, err := rhyme.NewEntry(char, w.data.Jyutping)
	if err != nil {
		return rhyme.Entry{}, fmt.Errorf("finals.%s[%d]: %w", w.final, w.pos, err)
	}
	if w.data.Tone != 0 && w.data.Tone != e.Syllable.Tone {
		return rhyme.Entry{}, fmt.Errorf("finals.%s[%d]: tone %d does not match %s", w.final, w.pos, w.data.Tone, e.Jyutping)
	}
	if e.Syllable.Final != w.final {
		return rhyme.Entry{}, fmt.Errorf("finals.%s[%d]: %s has final %q", w.final, w.pos, e.Jyutping, e.Syllable.Final)
	}
	return e, nil
}

// flatten lists the rows of table, finals in ascending order.
func flatten(table *loader.TableData) []entryWork {
	finals := make([]string, 0, len(table.Finals))
	for f := range table.Finals {
		finals = append(finals, f)
	}
	sort.Strings(finals)

	var work []entryWork
	for _, f := range finals {
		for i, c := range table.Finals[f].Characters {
			work = append(work, entryWork{index: len(work), final: f, pos: i, data: c})
		}
	}
	return work
}

// assemble groups valid results into buckets in input order, dropping
// repeated pairs.
func assemble(work []entryWork, results []entryResult) ([]rhyme.Bucket, int, []error) {
	var (
		buckets []rhyme.Bucket
		errs    []error
		dupes   int
	)
	seen := make(map[rhyme.Entry]bool)

	for i, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		if seen[r.entry] {
			dupes++
			continue
		}
		seen[r.entry] = true

		final := work[i].final
		if n := len(buckets); n == 0 || buckets[n-1].Final != final {
			buckets = append(buckets, rhyme.Bucket{Final: final})
		}
		last := &buckets[len(buckets)-1]
		last.Entries = append(last.Entries, r.entry)
	}
	return buckets, dupes, errs
}
