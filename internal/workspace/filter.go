package workspace

import (
	"sort"
	"strings"
	"time"

	"github.com/maheshrc27/creatorflow/internal/models"
)

const (
	PlatformFilterAll = "all"

	OrderNewest = "newest"
	OrderOldest = "oldest"
)

// FilterAndSort narrows a post collection by search term and platform,
// then orders it by timestamp. Pure: the input slice is never mutated.
func FilterAndSort(posts []models.PostView, searchTerm, platformFilter, dateOrder string) []models.PostView {
	needle := strings.ToLower(strings.TrimSpace(searchTerm))
	platform := strings.ToLower(strings.TrimSpace(platformFilter))

	out := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Content), needle) &&
			!strings.Contains(strings.ToLower(p.Platform.Label()), needle) {
			continue
		}
		if platform != "" && platform != PlatformFilterAll &&
			platform != strings.ToLower(string(p.Platform)) &&
			platform != strings.ToLower(p.Platform.Label()) &&
			platform != p.Platform.IconKey() {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := parsePostTime(out[i].Time), parsePostTime(out[j].Time)
		if dateOrder == OrderNewest {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})

	return out
}

func parsePostTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FilterDrafts and FilterPublished adapt the stored collections into
// the view shape the filter operates on.

func (s *Store) FilterDrafts(searchTerm, platformFilter, dateOrder string) []models.PostView {
	drafts := s.Drafts()
	views := make([]models.PostView, 0, len(drafts))
	for _, d := range drafts {
		views = append(views, models.PostView{ID: d.ID, Platform: d.Platform, Content: d.Content, Time: d.Time})
	}
	return FilterAndSort(views, searchTerm, platformFilter, dateOrder)
}

func (s *Store) FilterPublished(searchTerm, platformFilter, dateOrder string) []models.PostView {
	published := s.Published()
	views := make([]models.PostView, 0, len(published))
	for _, p := range published {
		views = append(views, models.PostView{ID: p.ID, Platform: p.Platform, Content: p.Content, Time: p.Time})
	}
	return FilterAndSort(views, searchTerm, platformFilter, dateOrder)
}
