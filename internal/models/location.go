package models

import "time"

// DefaultLocationName is the lookup key for the shared analysis location.
// Readings submitted without an explicit site are attached to it.
const DefaultLocationName = "Default Analysis Location"

// DefaultLocationDescription describes the lazily created default location.
const DefaultLocationDescription = "Default location for manual rockfall risk analysis"

// MonitoredLocation represents a row in the 'monitored_locations' table.
type MonitoredLocation struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
