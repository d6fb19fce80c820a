// Package models defines the data structures exchanged between the remote
// clients, the resolver and the outer transport layer.
package models

// DirectoryEntry is one row of a remote directory listing. Name is never
// "." or ".."; those are dropped by the client before mapping.
type DirectoryEntry struct {
	Name      string `json:"name"`
	Date      string `json:"date"` // YYYY-MM-DD, from the remote mtime
	Time      string `json:"time"` // HH:MM:SS
	SizeBytes int64  `json:"sizeBytes"`
	IsDir     bool   `json:"isDirectory"`
}
