package models

import "time"

// OrphanReport counts graph rows that no parent references
type OrphanReport struct {
	OrphanModules int
	OrphanLessons int
	CheckedAt     time.Time
}
