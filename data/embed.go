// Package data holds the reference tables compiled into the binaries.
package data

import _ "embed"

// Rhymes is the default reference table in rhymes.json format.
//
//go:embed rhymes.json
var Rhymes []byte

// Readings is the default supplementary reading list.
//
//go:embed readings.tsv
var Readings []byte
