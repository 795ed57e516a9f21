package models

import "time"

// Evidence describes a completion-proof file uploaded for a task. The blob
// itself lives in object storage under StorageKey; FileURL is a short-lived
// presigned link populated when evidence is listed, never persisted.
type Evidence struct {
	ID         int64
	TaskID     int64
	UserID     int64
	StorageKey string
	FileName   string
	FileType   string
	FileSize   int64
	CreatedAt  time.Time

	FileURL string
}
