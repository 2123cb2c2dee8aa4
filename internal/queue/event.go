// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit trail.
package queue

// EntryRecordedEvent is published whenever an income or expense entry is
// created.  It contains enough information for downstream consumers to log
// or trigger analytics without querying the primary database.
type EntryRecordedEvent struct {
	EntryType     string `json:"entry_type"` // "income" | "expense"
	EntryID       uint64 `json:"entry_id"`
	ApartmentID   uint64 `json:"apartment_id"`
	ApartmentName string `json:"apartment_name"`
	UserID        uint64 `json:"user_id"`
	AmountCents   int64  `json:"amount_cents"`
	Date          string `json:"date"`               // YYYY-MM-DD
	Category      string `json:"category,omitempty"` // expenses only
	RecordedAt    string `json:"recorded_at"`
}
