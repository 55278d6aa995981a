package models

import "time"

// Visit records that visitor viewed host's map. Rows are append-only.
type Visit struct {
	Host      string    `json:"host"`
	Visitor   string    `json:"visitor"`
	VisitedAt time.Time `json:"timestamp"`
}
