package models

import "time"

const (
	MediaImage = "image"
	MediaVideo = "video"
)

// MediaFile is a generated image or video held for the current session.
// The binary payload is never persisted; Release must be called when the
// file leaves the collection so the buffer can be reclaimed.
type MediaFile struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Type      string    `json:"type"`
	Preview   string    `json:"preview"`
	MimeType  string    `json:"mime_type"`
	Data      []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Release drops the backing buffer. The struct stays valid as a record,
// but the payload is gone.
func (m *MediaFile) Release() {
	m.Data = nil
	m.Preview = ""
}

func (m *MediaFile) Released() bool {
	return m.Data == nil
}
