package stacks

import "time"

// CurrentVersion is the settings schema version written by this release.
// Version 1 stores predate the version column and the actor lists.
const CurrentVersion = 2

// SettingsRecord is the single row of the 'stack_settings' table.
type SettingsRecord struct {
	ID                     uint      `gorm:"column:id;primaryKey"`
	Version                int       `gorm:"column:version;not null;default:1"`
	DefaultLimit           int       `gorm:"column:default_limit;not null"`
	BatchEnabled           bool      `gorm:"column:batch_enabled;not null"`
	BatchSize              int       `gorm:"column:batch_size;not null"`
	CleanupIntervalSeconds float64   `gorm:"column:cleanup_interval_seconds;not null"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (SettingsRecord) TableName() string {
	return "stack_settings"
}

// OverrideRecord is one row of the 'stack_overrides' table.
type OverrideRecord struct {
	ID    uint   `gorm:"column:id;primaryKey"`
	Kind  string `gorm:"column:kind;size:16;not null;uniqueIndex:idx_stack_override"`
	Key   string `gorm:"column:override_key;size:255;not null;uniqueIndex:idx_stack_override"`
	Limit int    `gorm:"column:stack_limit;not null"`
}

// TableName overrides the table name.
func (OverrideRecord) TableName() string {
	return "stack_overrides"
}

// ActorRecord is one row of the 'stack_actors' table.
type ActorRecord struct {
	ID   uint   `gorm:"column:id;primaryKey"`
	List string `gorm:"column:list;size:8;not null;uniqueIndex:idx_stack_actor"`
	Name string `gorm:"column:name;size:64;not null;uniqueIndex:idx_stack_actor"`
}

// TableName overrides the table name.
func (ActorRecord) TableName() string {
	return "stack_actors"
}

const (
	listAllow = "allow"
	listDeny  = "deny"
)

// settingsID is the primary key of the single settings row.
const settingsID = 1
