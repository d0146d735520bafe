package store

import (
	"time"

	"gorm.io/datatypes"
)

// metaRow tracks the version of each schema applied to the database.
type metaRow struct {
	Name      string `gorm:"primaryKey;size:100"`
	Version   int    `gorm:"not null"`
	UpdatedAt time.Time
}

func (metaRow) TableName() string {
	return "store_meta"
}

type collectionRow struct {
	Name      string `gorm:"primaryKey;size:64"`
	KeyPath   string `gorm:"size:64;not null"`
	CreatedAt time.Time
}

func (collectionRow) TableName() string {
	return "store_collections"
}

type indexRow struct {
	Collection string `gorm:"primaryKey;size:64"`
	Field      string `gorm:"primaryKey;size:64"`
	CreatedAt  time.Time
}

func (indexRow) TableName() string {
	return "store_indexes"
}

// recordRow holds one JSON document of a collection.
type recordRow struct {
	Collection string         `gorm:"primaryKey;size:64"`
	Key        string         `gorm:"column:record_key;primaryKey;size:191"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (recordRow) TableName() string {
	return "store_records"
}

// indexEntryRow maps an indexed field value to the key of a record holding it.
type indexEntryRow struct {
	Collection string `gorm:"primaryKey;size:64;index:idx_entry_record,priority:1"`
	Field      string `gorm:"primaryKey;size:64"`
	Value      string `gorm:"column:index_value;primaryKey;size:191"`
	Key        string `gorm:"column:record_key;primaryKey;size:191;index:idx_entry_record,priority:2"`
}

func (indexEntryRow) TableName() string {
	return "store_index_entries"
}
