package processor

import (
	"github.com/palemoky/tinci/internal/loader"
	"github.com/palemoky/tinci/internal/rhyme"
)

// entryWork is one table row waiting for validation. index is its position
// in the flattened table and keeps the output in input order.
type entryWork struct {
	index int
	final string
	pos   int
	data  loader.EntryData
}

type entryResult struct {
	entry rhyme.Entry
	err   error
}

// Report summarises an import.
type Report struct {
	Total      int
	Imported   int
	Duplicates int
	Rejected   int
	Finals     int
	// Errors holds at most MaxErrorsToCollect rejection reasons.
	Errors []error
}
