package models

// MistakeRecord counts how often the exact same mistake text was committed
type MistakeRecord struct {
	ID      int64  `json:"id"`
	Mistake string `json:"mistake"`
	Count   int    `json:"count"`
}
