package store

import (
	"context"
	"time"

	"codeberg.org/mutker/hwprint/internal/fingerprint"
)

// Repository persists assembled reports.
type Repository interface {
	fingerprint.Sink
	// List returns the newest records first. A limit of zero lists all.
	List(ctx context.Context, limit int) ([]Record, error)
}

// Record is one stored report.
type Record struct {
	ID         string
	Session    string
	CapturedAt time.Time
	Report     *fingerprint.Report
}
