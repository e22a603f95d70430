package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/maheshrc27/creatorflow/internal/models"
	"github.com/maheshrc27/creatorflow/internal/service"
	"github.com/maheshrc27/creatorflow/internal/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NoSelection is the sentinel for "no open post selected".
const NoSelection = ""

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrBusy           = errors.New("a request is already in flight")
	ErrNoSelection    = errors.New("no post is selected")
	ErrNoActiveSource = errors.New("no source is active")
)

// SchedulePublisher enqueues a deferred publish for a scheduled event.
// Optional; without one, scheduled events stay on the calendar until
// acted on manually.
type SchedulePublisher interface {
	EnqueuePublish(eventID string, day models.DayKey, at time.Time) error
}

// Store is the single-writer workspace state container. It owns every
// entity collection, exposes all mutating operations, and persists the
// affected slices after each mutation. UI layers read snapshots and
// never mutate directly.
type Store struct {
	mu    sync.Mutex
	kv    *storage.Store
	genai service.GenAIService
	video service.VideoService

	posts      []*models.Post
	contents   map[string]string
	eventLinks map[string]models.EventLink
	selectedID string

	drafts    []*models.DraftPost
	published []*models.PublishedPost
	failed    []*models.FailedPost
	calendar  map[models.DayKey][]*models.CalendarEvent
	sources   []*models.SavedSource
	projects  []*models.VideoProject

	// Session-local, never persisted.
	chat  []models.ChatMessage
	media []*models.MediaFile

	activeSourceID string
	chatBusy       bool
	generateBusy   bool
	imageBusy      bool
	videoBusy      bool

	scheduler    SchedulePublisher
	pollInterval time.Duration
	maxPolls     int

	subs []chan struct{}
}

func New(ctx context.Context, kv *storage.Store, genai service.GenAIService, video service.VideoService) *Store {
	s := &Store{
		kv:           kv,
		genai:        genai,
		video:        video,
		contents:     make(map[string]string),
		eventLinks:   make(map[string]models.EventLink),
		calendar:     make(map[models.DayKey][]*models.CalendarEvent),
		selectedID:   NoSelection,
		pollInterval: 10 * time.Second,
		maxPolls:     60,
	}
	s.load(ctx)
	return s
}

// SetPollCadence adjusts the video poll interval and cap. Defaults are
// ten seconds and sixty polls (a ten-minute ceiling).
func (s *Store) SetPollCadence(interval time.Duration, maxPolls int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if interval > 0 {
		s.pollInterval = interval
	}
	if maxPolls > 0 {
		s.maxPolls = maxPolls
	}
}

func (s *Store) SetScheduler(p SchedulePublisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduler = p
}

// load restores the persisted slices. Absent or corrupt entries leave
// the empty defaults in place.
func (s *Store) load(ctx context.Context) {
	s.kv.Load(ctx, storage.KeyPostContents, &s.contents)
	s.kv.Load(ctx, storage.KeyDraftPosts, &s.drafts)
	s.kv.Load(ctx, storage.KeyPublishedPosts, &s.published)
	s.kv.Load(ctx, storage.KeyFailedPosts, &s.failed)
	s.kv.Load(ctx, storage.KeySavedSources, &s.sources)
	s.kv.Load(ctx, storage.KeyVideoProjects, &s.projects)

	encoded := make(map[string][]*models.CalendarEvent)
	if s.kv.Load(ctx, storage.KeyCalendarEvents, &encoded) {
		for rawKey, events := range encoded {
			day, err := models.ParseDayKey(rawKey)
			if err != nil {
				continue
			}
			s.calendar[day] = events
		}
	}
	if s.contents == nil {
		s.contents = make(map[string]string)
	}
}

// Subscribe returns a channel that receives a (coalesced) signal after
// each committed mutation. The core never blocks on slow subscribers.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := s.subs
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func newID() string {
	id, err := gonanoid.New()
	if err != nil {
		// crypto/rand exhaustion; fall back to a time-derived id
		return time.Now().Format("20060102150405.000000000")
	}
	return id
}

// persist helpers, called with the lock held.

func (s *Store) persistContents(ctx context.Context)  { s.kv.Save(ctx, storage.KeyPostContents, s.contents) }
func (s *Store) persistDrafts(ctx context.Context)    { s.kv.Save(ctx, storage.KeyDraftPosts, s.drafts) }
func (s *Store) persistPublished(ctx context.Context) { s.kv.Save(ctx, storage.KeyPublishedPosts, s.published) }
func (s *Store) persistFailed(ctx context.Context)    { s.kv.Save(ctx, storage.KeyFailedPosts, s.failed) }
func (s *Store) persistSources(ctx context.Context)   { s.kv.Save(ctx, storage.KeySavedSources, s.sources) }
func (s *Store) persistProjects(ctx context.Context)  { s.kv.Save(ctx, storage.KeyVideoProjects, s.projects) }

func (s *Store) persistCalendar(ctx context.Context) {
	encoded := make(map[string][]*models.CalendarEvent, len(s.calendar))
	for day, events := range s.calendar {
		encoded[day.Encode()] = events
	}
	s.kv.Save(ctx, storage.KeyCalendarEvents, encoded)
}

// PersistAll writes every persisted slice; used by the snapshot job.
func (s *Store) PersistAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistContents(ctx)
	s.persistDrafts(ctx)
	s.persistPublished(ctx)
	s.persistFailed(ctx)
	s.persistSources(ctx)
	s.persistProjects(ctx)
	s.persistCalendar(ctx)
}

// Snapshot accessors. Each returns a copy; callers never see internal
// slices.

func (s *Store) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p)
	}
	return out
}

func (s *Store) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

func (s *Store) Content(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contents[id]
}

func (s *Store) Drafts() []models.DraftPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DraftPost, 0, len(s.drafts))
	for _, d := range s.drafts {
		out = append(out, *d)
	}
	return out
}

func (s *Store) Published() []models.PublishedPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PublishedPost, 0, len(s.published))
	for _, p := range s.published {
		out = append(out, *p)
	}
	return out
}

func (s *Store) Failed() []models.FailedPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FailedPost, 0, len(s.failed))
	for _, f := range s.failed {
		out = append(out, *f)
	}
	return out
}

func (s *Store) Sources() []models.SavedSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SavedSource, 0, len(s.sources))
	for _, src := range s.sources {
		out = append(out, *src)
	}
	return out
}

func (s *Store) ChatMessages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

func (s *Store) Events(day models.DayKey) []models.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CalendarEvent, 0, len(s.calendar[day]))
	for _, ev := range s.calendar[day] {
		out = append(out, *ev)
	}
	return out
}

func (s *Store) AllEvents() map[string][]models.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]models.CalendarEvent, len(s.calendar))
	for day, events := range s.calendar {
		bucket := make([]models.CalendarEvent, 0, len(events))
		for _, ev := range events {
			bucket = append(bucket, *ev)
		}
		out[day.Encode()] = bucket
	}
	return out
}

func (s *Store) VideoProjects() []models.VideoProject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.VideoProject, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	return out
}

// chat transcript helpers, called with the lock held.

func (s *Store) appendChatLocked(role, content string) {
	s.chat = append(s.chat, models.ChatMessage{Role: role, Content: content})
}

// replaceLastAssistantLocked rewrites the trailing assistant message
// in place, or appends one if the transcript doesn't end with one. Used
// by the video poll loop to avoid flooding the transcript.
func (s *Store) replaceLastAssistantLocked(content string) {
	if n := len(s.chat); n > 0 && s.chat[n-1].Role == models.RoleAssistant {
		s.chat[n-1].Content = content
		return
	}
	s.appendChatLocked(models.RoleAssistant, content)
}

func (s *Store) appendAssistant(content string) {
	s.mu.Lock()
	s.appendChatLocked(models.RoleAssistant, content)
	s.mu.Unlock()
	s.notify()
}
