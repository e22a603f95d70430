package models

import "time"

type ApiKey struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	ApiKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}

// ApiStats tracks per-key usage, bumped by the auth middleware.
type ApiStats struct {
	KeyID      string    `json:"key_id"`
	Requests   int64     `json:"requests"`
	LastUsedAt time.Time `json:"last_used_at"`
}

type VideoProject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
