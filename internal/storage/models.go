package storage

import (
	"time"
)

// SearchRecord tracks one query the user has submitted.
type SearchRecord struct {
	Query    string    `json:"query"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"last_used"`
}
