package constants

import "time"

// CollisionType discriminates what a candidate interval ran into
type CollisionType string

const (
	AppName            = "studyplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studyplan/studyplan.db"
	DefaultUserID      = "local"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is accepted by commands that take an instant (YYYY-MM-DD HH:MM)
	DateTimeFormat = "2006-01-02 15:04"

	// StorageTimeFormat is how instants are written to the database. Fixed width UTC so
	// that string comparison in SQL matches chronological order.
	StorageTimeFormat = "2006-01-02T15:04:05Z"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studyplan-"
	BackupFileSuffix = ".db"

	// Collision kinds
	CollisionFixedEvent  CollisionType = "fixed_event"
	CollisionLockedBlock CollisionType = "locked_block"

	// Day-0 placement starts at the next multiple of this after now
	StartRounding = 5 * time.Minute
)

// BlockPalette is cycled through for tasks that carry no colour of their own.
var BlockPalette = []string{
	"#7C9CF5", "#F5A97F", "#8BD5CA", "#EED49F", "#C6A0F6", "#F0C6C6", "#A6DA95", "#91D7E3",
}

// DefaultEventColor is used for fixed events without a colour.
const DefaultEventColor = "#6E738D"
