package models

import (
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedin  Platform = "linkedin"
	PlatformTiktok    Platform = "tiktok"
	PlatformYoutube   Platform = "youtube"
)

var Platforms = []Platform{
	PlatformTwitter,
	PlatformFacebook,
	PlatformInstagram,
	PlatformLinkedin,
	PlatformTiktok,
	PlatformYoutube,
}

var platformLabels = map[Platform]string{
	PlatformTwitter:   "Twitter",
	PlatformFacebook:  "Facebook",
	PlatformInstagram: "Instagram",
	PlatformLinkedin:  "LinkedIn",
	PlatformTiktok:    "TikTok",
	PlatformYoutube:   "YouTube",
}

var platformIcons = map[Platform]string{
	PlatformTwitter:   "x",
	PlatformFacebook:  "fb",
	PlatformInstagram: "ig",
	PlatformLinkedin:  "in",
	PlatformTiktok:    "tt",
	PlatformYoutube:   "yt",
}

func (p Platform) Label() string {
	if label, ok := platformLabels[p]; ok {
		return label
	}
	return string(p)
}

func (p Platform) IconKey() string {
	return platformIcons[p]
}

// ParsePlatform resolves a platform from its canonical value, display
// label, or icon key, case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Platforms {
		if needle == string(p) || needle == strings.ToLower(p.Label()) || needle == p.IconKey() {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// Post is an open post being edited in the workspace. Its text lives in
// the store's content map, not on the struct.
type Post struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
}

// EventLink ties an open post to the calendar event it was seeded from.
// Content edits to the post propagate to the linked event.
type EventLink struct {
	EventID string `json:"event_id"`
	Day     DayKey `json:"day"`
}

type DraftPost struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
	Content  string   `json:"content"`
	Time     string   `json:"time"`
	Status   string   `json:"status"`
}

type PublishedPost struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
	Content  string   `json:"content"`
	Time     string   `json:"time"`
	Status   string   `json:"status"`
	URL      string   `json:"url"`
	Likes    int      `json:"likes"`
	Comments int      `json:"comments"`
	Shares   int      `json:"shares"`
}

type FailedPost struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Error    string   `json:"error,omitempty"`
	Profile  string   `json:"profile,omitempty"`
	URL      string   `json:"url,omitempty"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

// PostView is the flattened shape the filter/sort utility operates on.
type PostView struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
	Content  string   `json:"content"`
	Time     string   `json:"time"`
}
