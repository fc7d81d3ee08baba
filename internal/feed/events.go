package feed

import "time"

const (
	TypeCreated  = "review.created"
	TypeUpdated  = "review.updated"
	TypeDeleted  = "review.deleted"
	TypeImported = "reviews.imported"
)

type Event struct {
	Type  string    `json:"type"`
	ID    string    `json:"id,omitempty"`
	Count int       `json:"count,omitempty"`
	At    time.Time `json:"at"`
}
