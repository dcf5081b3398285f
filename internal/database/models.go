package database

import (
	"time"

	"gorm.io/datatypes"
)

// Metadata keys
const (
	MetaSchemaVersion = "schema_version"
	MetaToneGroups    = "tone_groups"
	MetaSource        = "source"
)

// RhymeEntry is one (character, reading) row. Position keeps the order of
// the entry inside its final's bucket.
type RhymeEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"                               json:"id"`
	Final     string    `gorm:"not null;index:idx_final_position,priority:1"           json:"final"`
	Position  int       `gorm:"not null;index:idx_final_position,priority:2"           json:"position"`
	Character string    `gorm:"not null;uniqueIndex:idx_unique_reading,priority:1"     json:"character"`
	Jyutping  string    `gorm:"not null;uniqueIndex:idx_unique_reading,priority:2"     json:"jyutping"`
	Tone      int       `gorm:"not null;index"                                         json:"tone"`
	CreatedAt time.Time `gorm:"autoCreateTime"                                         json:"created_at"`
}

// TableName specifies the table name for RhymeEntry
func (RhymeEntry) TableName() string {
	return "rhyme_entries"
}

// Metadata holds snapshot-wide values such as the tone group table.
type Metadata struct {
	Key       string         `gorm:"primaryKey"     json:"key"`
	Value     datatypes.JSON `gorm:"type:json"      json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Metadata
func (Metadata) TableName() string {
	return "metadata"
}

// FinalStats counts the entries of one final.
type FinalStats struct {
	Final string `json:"final"`
	Count int    `json:"count"`
}

// ToneStats counts the entries of one tone.
type ToneStats struct {
	Tone  int `json:"tone"`
	Count int `json:"count"`
}

// Statistics holds overall statistics
type Statistics struct {
	TotalEntries    int          `json:"total_entries"`
	TotalFinals     int          `json:"total_finals"`
	TotalCharacters int          `json:"total_characters"`
	EntriesByFinal  []FinalStats `json:"entries_by_final"`
	EntriesByTone   []ToneStats  `json:"entries_by_tone"`
}
