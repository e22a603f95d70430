package workspace

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/maheshrc27/creatorflow/internal/service"
	"github.com/maheshrc27/creatorflow/internal/storage"
	"github.com/maheshrc27/creatorflow/internal/transfer"
)

type fakeGenAI struct {
	chatReply     string
	chatErr       error
	chatCalls     int
	chatDelay     time.Duration
	generateReply string
	generateErr   error
	generateCalls int
	imageParts    []transfer.GenAIPart
	imageErr      error
}

func (f *fakeGenAI) Chat(ctx context.Context, history []transfer.GenAIContent, newMessage string) (string, error) {
	f.chatCalls++
	if f.chatDelay > 0 {
		time.Sleep(f.chatDelay)
	}
	return f.chatReply, f.chatErr
}

func (f *fakeGenAI) GenerateContent(ctx context.Context, promptParts []string) (string, error) {
	f.generateCalls++
	return f.generateReply, f.generateErr
}

func (f *fakeGenAI) GenerateImages(ctx context.Context, prompt string, n int) ([]transfer.GenAIPart, error) {
	return f.imageParts, f.imageErr
}

type fakeVideoOp struct {
	pollsUntilDone int
	polls          int
	uri            string
	pollErr        error
	onPoll         func()
}

func (o *fakeVideoOp) Poll(ctx context.Context) (bool, string, error) {
	o.polls++
	if o.onPoll != nil {
		o.onPoll()
	}
	if o.pollErr != nil {
		return false, "", o.pollErr
	}
	if o.pollsUntilDone > 0 && o.polls >= o.pollsUntilDone {
		return true, o.uri, nil
	}
	return false, "", nil
}

type fakeVideo struct {
	op          *fakeVideoOp
	submitErr   error
	downloaded  []byte
	downloadErr error
}

func (f *fakeVideo) SubmitJob(ctx context.Context, spec transfer.VideoJobSpec) (service.VideoOperation, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.op, nil
}

func (f *fakeVideo) Download(ctx context.Context, uri string) ([]byte, error) {
	return f.downloaded, f.downloadErr
}

func newTestStore(t *testing.T) (*Store, *fakeGenAI, *fakeVideo) {
	t.Helper()

	kv, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	genai := &fakeGenAI{}
	video := &fakeVideo{}
	s := New(context.Background(), kv, genai, video)
	s.SetPollCadence(time.Millisecond, 60)
	return s, genai, video
}

func assistantMessages(s *Store) []string {
	var out []string
	for _, msg := range s.ChatMessages() {
		if msg.Role == "assistant" {
			out = append(out, msg.Content)
		}
	}
	return out
}

func TestSubscribeSignalsOnMutation(t *testing.T) {
	s, _, _ := newTestStore(t)
	ch := s.Subscribe()

	s.CreatePost(context.Background(), "twitter")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestPersistedStateSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")
	ctx := context.Background()

	kv, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	s := New(ctx, kv, &fakeGenAI{}, &fakeVideo{})
	id := s.CreatePost(ctx, "facebook")
	s.UpdatePostContent(ctx, id, "persisted text")
	s.SaveDraft(ctx, id)
	s.AddSource(ctx, "text", "raw material", "Notes")
	kv.Close()

	kv2, err := storage.Open(path)
	if err != nil {
		t.Fatalf("reopen storage: %v", err)
	}
	defer kv2.Close()
	s2 := New(ctx, kv2, &fakeGenAI{}, &fakeVideo{})

	drafts := s2.Drafts()
	if len(drafts) != 1 || drafts[0].Content != "persisted text" {
		t.Fatalf("drafts after reload = %+v", drafts)
	}
	if got := s2.Content(id); got != "persisted text" {
		t.Fatalf("content after reload = %q", got)
	}
	if len(s2.Sources()) != 1 {
		t.Fatalf("sources after reload = %+v", s2.Sources())
	}
	// The transcript is session-local and must not survive.
	if len(s2.ChatMessages()) != 0 {
		t.Fatalf("transcript should not be persisted")
	}
}
