package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/maheshrc27/creatorflow/internal/models"
	"github.com/maheshrc27/creatorflow/internal/storage"
)

// AddEvent creates an unscheduled event in the day bucket.
func (s *Store) AddEvent(ctx context.Context, day models.DayKey, platform models.Platform) string {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	ev := &models.CalendarEvent{
		ID:       newID(),
		Platform: platform,
		Time:     "",
		Status:   "unscheduled",
		NoteType: models.NotePending,
	}
	s.calendar[day] = append(s.calendar[day], ev)
	s.persistCalendar(ctx)
	return ev.ID
}

// UpdateEvent moves an event between day buckets (drag-and-drop
// rescheduling) and optionally rewrites its time. Old and new day may
// be the same, which reduces to a reorder.
func (s *Store) UpdateEvent(ctx context.Context, oldDay models.DayKey, eventID string, newDay models.DayKey, newTime *string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	var moved *models.CalendarEvent
	bucket := s.calendar[oldDay]
	for i, ev := range bucket {
		if ev.ID == eventID {
			moved = ev
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if moved == nil {
		return
	}
	if len(bucket) == 0 {
		delete(s.calendar, oldDay)
	} else {
		s.calendar[oldDay] = bucket
	}

	if newTime != nil {
		moved.Time = *newTime
	}
	s.calendar[newDay] = append(s.calendar[newDay], moved)
	sortBucket(s.calendar[newDay])
	s.persistCalendar(ctx)
}

// DeleteEvent removes the event from its day bucket; an emptied bucket
// is dropped from the map.
func (s *Store) DeleteEvent(ctx context.Context, day models.DayKey, eventID string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	bucket := s.calendar[day]
	for i, ev := range bucket {
		if ev.ID == eventID {
			bucket = append(bucket[:i], bucket[i+1:]...)
			if len(bucket) == 0 {
				delete(s.calendar, day)
			} else {
				s.calendar[day] = bucket
			}
			s.persistCalendar(ctx)
			return
		}
	}
}

// SchedulePost turns an open post into a calendar event at the given
// day and display time, then closes the editor entry — the same
// destructive semantics as publishing.
func (s *Store) SchedulePost(ctx context.Context, postID string, day models.DayKey, displayTime string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	post := s.findPostLocked(postID)
	if post == nil {
		return
	}

	ev := &models.CalendarEvent{
		ID:        newID(),
		Platform:  post.Platform,
		Time:      To24Hour(displayTime),
		Status:    fmt.Sprintf("scheduled %s", displayTime),
		NoteType:  models.NoteCaution,
		Content:   s.contents[postID],
		Scheduled: true,
	}
	s.calendar[day] = append(s.calendar[day], ev)
	sortBucket(s.calendar[day])
	s.persistCalendar(ctx)
	s.deletePostLocked(ctx, postID)

	if s.scheduler != nil {
		at := eventTime(day, ev.Time)
		if err := s.scheduler.EnqueuePublish(ev.ID, day, at); err != nil {
			// The event stays on the calendar; publishing it is manual.
			slog.Error("failed to enqueue scheduled publish", "event", ev.ID, "error", err)
		}
	}
}

// ClearAllEvents wipes the calendar and its persisted copy.
func (s *Store) ClearAllEvents(ctx context.Context) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	s.calendar = make(map[models.DayKey][]*models.CalendarEvent)
	s.kv.Remove(ctx, storage.KeyCalendarEvents)
}

// MarkEventPublished flips a scheduled event to its published state.
// Called by the deferred-publish worker when the scheduled time
// arrives.
func (s *Store) MarkEventPublished(ctx context.Context, eventID string, day models.DayKey) bool {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	for _, ev := range s.calendar[day] {
		if ev.ID == eventID {
			ev.Published = true
			ev.Scheduled = false
			ev.Status = models.PostStatusPublished
			ev.NoteType = models.NoteSuccess
			ev.URL = publishURL(ev.Platform, ev.ID)
			s.published = append(s.published, &models.PublishedPost{
				ID:       ev.ID,
				Platform: ev.Platform,
				Content:  ev.Content,
				Time:     time.Now().Format(time.RFC3339),
				Status:   models.PostStatusPublished,
				URL:      ev.URL,
			})
			s.persistCalendar(ctx)
			s.persistPublished(ctx)
			return true
		}
	}
	return false
}

// MarkEventFailed records a failed deferred publish.
func (s *Store) MarkEventFailed(ctx context.Context, eventID string, day models.DayKey, reason string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	for _, ev := range s.calendar[day] {
		if ev.ID == eventID {
			ev.Failed = true
			ev.Status = models.PostStatusFailed
			now := time.Now()
			s.failed = append(s.failed, &models.FailedPost{
				ID:       ev.ID,
				Platform: ev.Platform,
				Content:  ev.Content,
				Date:     now.Format("2006-01-02"),
				Time:     now.Format("15:04"),
				Error:    reason,
			})
			s.persistCalendar(ctx)
			s.persistFailed(ctx)
			return
		}
	}
}

// sortBucket keeps a day bucket ascending by time. Times are HH:MM so
// lexicographic order is chronological; empty (unscheduled) sorts
// first.
func sortBucket(bucket []*models.CalendarEvent) {
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].Time < bucket[j].Time
	})
}

// To24Hour converts a possibly 12-hour display time ("2:30 PM") into
// 24-hour "HH:MM". Already-24-hour input passes through normalized.
func To24Hour(display string) string {
	t := strings.TrimSpace(display)
	upper := strings.ToUpper(t)

	meridiem := ""
	if strings.HasSuffix(upper, "AM") {
		meridiem = "AM"
	} else if strings.HasSuffix(upper, "PM") {
		meridiem = "PM"
	}
	if meridiem != "" {
		t = strings.TrimSpace(t[:len(t)-2])
	}

	parts := strings.SplitN(t, ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return display
	}
	minute := 0
	if len(parts) == 2 {
		if m, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			minute = m
		}
	}

	switch meridiem {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 12 {
			hour += 12
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// eventTime resolves a day key plus "HH:MM" into a wall-clock time.
func eventTime(day models.DayKey, hhmm string) time.Time {
	hour, minute := 0, 0
	if parts := strings.SplitN(hhmm, ":", 2); len(parts) == 2 {
		hour, _ = strconv.Atoi(parts[0])
		minute, _ = strconv.Atoi(parts[1])
	}
	return time.Date(day.Year, time.Month(day.Month+1), day.Day, hour, minute, 0, 0, time.Local)
}
