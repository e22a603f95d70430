package workspace

import (
	"context"
	"strings"
	"testing"

	"github.com/maheshrc27/creatorflow/internal/models"
)

func TestCreatePostIDsAreDistinct(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.CreatePost(ctx, models.PlatformTwitter)
		if seen[id] {
			t.Fatalf("duplicate post id %q", id)
		}
		seen[id] = true
	}
}

func TestCreatePostSelectsAndSeedsContent(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	id := s.CreatePost(ctx, models.PlatformFacebook)
	if s.SelectedID() != id {
		t.Fatalf("selected = %q, want %q", s.SelectedID(), id)
	}
	if got := s.Content(id); got != "" {
		t.Fatalf("new post content = %q, want empty", got)
	}
}

func TestDeletePostIsIdempotent(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	id := s.CreatePost(ctx, models.PlatformTwitter)
	s.DeletePost(ctx, id)
	s.DeletePost(ctx, id) // second delete must be a quiet no-op

	if len(s.Posts()) != 0 {
		t.Fatalf("posts = %+v, want none", s.Posts())
	}
	if s.SelectedID() != NoSelection {
		t.Fatalf("selected = %q, want none", s.SelectedID())
	}
}

func TestDeleteSelectedFallsBackToFirstRemaining(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	first := s.CreatePost(ctx, models.PlatformTwitter)
	second := s.CreatePost(ctx, models.PlatformFacebook)

	s.DeletePost(ctx, second)
	if s.SelectedID() != first {
		t.Fatalf("selected = %q, want %q", s.SelectedID(), first)
	}
}

func TestUpdateContentPropagatesToLinkedEvent(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	day := models.DayKey{Year: 2024, Month: 3, Day: 12}
	eventID := s.AddEvent(ctx, day, models.PlatformInstagram)

	id := s.OpenPost(ctx, models.PlatformInstagram, "seed", &models.EventLink{EventID: eventID, Day: day})
	s.UpdatePostContent(ctx, id, "updated everywhere")

	if got := s.Content(id); got != "updated everywhere" {
		t.Fatalf("content = %q", got)
	}
	events := s.Events(day)
	if len(events) != 1 || events[0].Content != "updated everywhere" {
		t.Fatalf("linked event content = %+v", events)
	}
}

func TestDeletePostDropsLinkageButKeepsEvent(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	day := models.DayKey{Year: 2024, Month: 3, Day: 12}
	eventID := s.AddEvent(ctx, day, models.PlatformInstagram)
	id := s.OpenPost(ctx, models.PlatformInstagram, "seed", &models.EventLink{EventID: eventID, Day: day})

	s.DeletePost(ctx, id)
	if len(s.Events(day)) != 1 {
		t.Fatal("calendar event should survive post deletion")
	}
}

func TestClonePost(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	id := s.CreatePost(ctx, models.PlatformLinkedin)
	s.UpdatePostContent(ctx, id, "original")

	cloneID := s.ClonePost(ctx, id)
	if cloneID == NoSelection || cloneID == id {
		t.Fatalf("clone id = %q", cloneID)
	}
	if s.SelectedID() != cloneID {
		t.Fatal("clone should be selected")
	}
	if got := s.Content(cloneID); got != "original" {
		t.Fatalf("clone content = %q", got)
	}

	if got := s.ClonePost(ctx, "missing"); got != NoSelection {
		t.Fatalf("cloning a missing post should be a no-op, got %q", got)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	id := s.CreatePost(ctx, models.PlatformTwitter)
	s.UpdatePostContent(ctx, id, "X")
	s.SaveDraft(ctx, id)

	// Draft-save is non-destructive.
	if len(s.Posts()) != 1 {
		t.Fatal("open post should survive a draft save")
	}

	s.DeletePost(ctx, id)
	reopened := s.EditDraft(ctx, id)
	if reopened == NoSelection {
		t.Fatal("edit draft should re-open a post")
	}
	if got := s.Content(reopened); got != "X" {
		t.Fatalf("re-opened content = %q, want %q", got, "X")
	}
}

func TestSaveDraftTwiceOverwrites(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	id := s.CreatePost(ctx, models.PlatformTwitter)
	s.UpdatePostContent(ctx, id, "v1")
	s.SaveDraft(ctx, id)
	s.UpdatePostContent(ctx, id, "v2")
	s.SaveDraft(ctx, id)

	drafts := s.Drafts()
	if len(drafts) != 1 {
		t.Fatalf("drafts = %d, want 1", len(drafts))
	}
	if drafts[0].Content != "v2" {
		t.Fatalf("draft content = %q, want v2", drafts[0].Content)
	}
}

func TestPublishPost(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	id := s.CreatePost(ctx, models.PlatformFacebook)
	s.UpdatePostContent(ctx, id, "going live")
	s.PublishPost(ctx, id)

	if len(s.Posts()) != 0 {
		t.Fatal("publishing should close the open post")
	}
	published := s.Published()
	if len(published) != 1 {
		t.Fatalf("published = %d, want 1", len(published))
	}
	p := published[0]
	if p.Content != "going live" || p.Status != models.PostStatusPublished {
		t.Fatalf("published entry = %+v", p)
	}
	if !strings.Contains(p.URL, id) {
		t.Fatalf("url %q should embed the post id", p.URL)
	}
	if p.Likes != 0 || p.Comments != 0 || p.Shares != 0 {
		t.Fatal("engagement counters should start at zero")
	}

	// Publishing an unknown id is a no-op.
	s.PublishPost(ctx, "missing")
	if len(s.Published()) != 1 {
		t.Fatal("publishing a missing post should not add entries")
	}
}

func TestPublishDraftComposition(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	id := s.CreatePost(ctx, models.PlatformTiktok)
	s.UpdatePostContent(ctx, id, "short video script")
	s.SaveDraft(ctx, id)

	s.PublishDraft(ctx, id)
	if len(s.Drafts()) != 0 {
		t.Fatal("draft should be removed")
	}
	if len(s.Published()) != 1 {
		t.Fatal("post should be published")
	}

	// No draft, no open post: still safe to call.
	s.PublishDraft(ctx, "missing")
}

func TestOpenPostReusesPlatformPost(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	first := s.OpenPost(ctx, models.PlatformTwitter, "one", nil)
	second := s.OpenPost(ctx, models.PlatformTwitter, "two", nil)

	if first != second {
		t.Fatalf("expected reuse, got %q and %q", first, second)
	}
	if got := s.Content(first); got != "two" {
		t.Fatalf("content = %q, want overwrite", got)
	}
	if len(s.Posts()) != 1 {
		t.Fatalf("posts = %d, want 1", len(s.Posts()))
	}
}

func TestRetryFailedPublishes(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	day := models.DayKey{Year: 2024, Month: 6, Day: 2}
	id := s.CreatePost(ctx, models.PlatformYoutube)
	s.UpdatePostContent(ctx, id, "launch video")
	s.SchedulePost(ctx, id, day, "9:00 AM")

	events := s.Events(day)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	s.MarkEventFailed(ctx, events[0].ID, day, "network unreachable")

	failed := s.Failed()
	if len(failed) != 1 || failed[0].Error != "network unreachable" {
		t.Fatalf("failed = %+v", failed)
	}

	s.RetryFailed(ctx, failed[0].ID)
	if len(s.Failed()) != 0 {
		t.Fatal("retried entry should leave the failed list")
	}
	if len(s.Published()) != 1 {
		t.Fatal("retried entry should be published")
	}
}
