package models

import (
	"fmt"
	"strconv"
	"strings"
)

// DayKey identifies one calendar day. Month is zero-based, matching the
// calendar grid the frontend renders. Using a value type as the map key
// (instead of concatenated numbers) makes bucket collisions impossible.
type DayKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Encode renders a fixed-width, delimiter-safe form used as the
// persisted map key, e.g. "2024-00-05".
func (k DayKey) Encode() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
}

func ParseDayKey(s string) (DayKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return DayKey{}, fmt.Errorf("malformed day key %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return DayKey{}, fmt.Errorf("malformed day key %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return DayKey{}, fmt.Errorf("malformed day key %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return DayKey{}, fmt.Errorf("malformed day key %q", s)
	}
	return DayKey{Year: year, Month: month, Day: day}, nil
}

// NoteType drives the event's calendar color, but the state it encodes
// matters: pending = not yet configured, caution = configured but
// unconfirmed, success = confirmed or published.
type NoteType string

const (
	NotePending NoteType = "pending"
	NoteCaution NoteType = "caution"
	NoteSuccess NoteType = "success"
)

type CalendarEvent struct {
	ID        string   `json:"id"`
	Platform  Platform `json:"platform"`
	Time      string   `json:"time"` // HH:MM 24-hour, "" = unscheduled
	Status    string   `json:"status"`
	NoteType  NoteType `json:"note_type"`
	Content   string   `json:"content,omitempty"`
	Scheduled bool     `json:"scheduled,omitempty"`
	Published bool     `json:"published,omitempty"`
	Failed    bool     `json:"failed,omitempty"`
	URL       string   `json:"url,omitempty"`
}
