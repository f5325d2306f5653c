package models

import "time"

// KeyValueEntry is the row layout used when collections are kept in a SQL database.
type KeyValueEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey;type:varchar(255)"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName pins the table name regardless of naming strategy.
func (KeyValueEntry) TableName() string {
	return "kv_entries"
}
