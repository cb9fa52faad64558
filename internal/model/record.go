package model

import "time"

// CompletionRecord is the permanent outcome of one day's puzzle. Records
// are write-once: once a date is decided it is history, and history does
// not get replayed.
type CompletionRecord struct {
	Completed   bool      `json:"completed"`
	Won         bool      `json:"won"`
	CompletedAt time.Time `json:"completedAt"`
}

// PageSummary is the plain-text summary of one wiki page, as returned by
// the fetch layer. Source records where the text came from ("api",
// "scrape" or "cache").
type PageSummary struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Source      string `json:"source,omitempty"`
}
