package workspace

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/maheshrc27/creatorflow/internal/models"
)

func TestSubmitChatCreatesPostFromAction(t *testing.T) {
	s, genai, _ := newTestStore(t)
	genai.chatReply = "```json\n" +
		`{"action":"create_post","platform":"Twitter","content":"☕ Coffee time!","summary_for_chat":"Created a tweet."}` +
		"\n```"

	if err := s.SubmitChat(context.Background(), "Write me a tweet about coffee"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	posts := s.Posts()
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}
	if posts[0].Platform != models.PlatformTwitter {
		t.Fatalf("platform = %q, want twitter", posts[0].Platform)
	}
	if got := s.Content(posts[0].ID); got != "☕ Coffee time!" {
		t.Fatalf("content = %q", got)
	}

	assistant := assistantMessages(s)
	if len(assistant) != 1 || assistant[0] != "Created a tweet." {
		t.Fatalf("assistant messages = %+v", assistant)
	}
}

func TestSubmitChatPlainTextFallback(t *testing.T) {
	s, genai, _ := newTestStore(t)
	genai.chatReply = "Here are some ideas for your campaign."

	if err := s.SubmitChat(context.Background(), "Any ideas?"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(s.Posts()) != 0 {
		t.Fatal("plain text reply must not create posts")
	}
	assistant := assistantMessages(s)
	if len(assistant) != 1 || assistant[0] != "Here are some ideas for your campaign." {
		t.Fatalf("assistant messages = %+v", assistant)
	}
}

func TestSubmitChatMalformedJSONFallsBackVerbatim(t *testing.T) {
	s, genai, _ := newTestStore(t)
	genai.chatReply = "```json\n{not valid json\n```"

	if err := s.SubmitChat(context.Background(), "hello"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(s.Posts()) != 0 {
		t.Fatal("malformed action must not create posts")
	}
	assistant := assistantMessages(s)
	if len(assistant) != 1 || assistant[0] != genai.chatReply {
		t.Fatalf("assistant messages = %+v", assistant)
	}
}

func TestSubmitChatRejectsBlank(t *testing.T) {
	s, genai, _ := newTestStore(t)

	if err := s.SubmitChat(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
	if genai.chatCalls != 0 {
		t.Fatal("blank input must not reach the network")
	}
	if len(s.ChatMessages()) != 0 {
		t.Fatal("blank input must not touch the transcript")
	}
}

func TestSubmitChatTransportErrorKeepsUserMessage(t *testing.T) {
	s, genai, _ := newTestStore(t)
	genai.chatErr = errors.New("connection refused")

	if err := s.SubmitChat(context.Background(), "ping"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	messages := s.ChatMessages()
	if len(messages) != 2 {
		t.Fatalf("transcript = %+v, want user + assistant error", messages)
	}
	if messages[0].Role != models.RoleUser || messages[0].Content != "ping" {
		t.Fatalf("optimistic user message missing: %+v", messages[0])
	}
	if messages[1].Role != models.RoleAssistant {
		t.Fatalf("expected assistant error message, got %+v", messages[1])
	}
	if s.ChatBusy() {
		t.Fatal("busy flag must clear after a failure")
	}
}

func TestSubmitChatGuardsDoubleSubmit(t *testing.T) {
	s, genai, _ := newTestStore(t)
	genai.chatReply = "ok"
	genai.chatDelay = 50 * time.Millisecond

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.SubmitChat(context.Background(), "first")
	}()

	// Wait until the first submission holds the in-flight flag.
	deadline := time.Now().Add(time.Second)
	for !s.ChatBusy() {
		if time.Now().After(deadline) {
			t.Fatal("first submission never started")
		}
		time.Sleep(time.Millisecond)
	}

	if err := s.SubmitChat(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
	wg.Wait()

	if genai.chatCalls != 1 {
		t.Fatalf("chat calls = %d, want 1", genai.chatCalls)
	}
}

func TestSubmitChatUnknownPlatformDowngradesToText(t *testing.T) {
	s, genai, _ := newTestStore(t)
	genai.chatReply = "```json\n" +
		`{"action":"create_post","platform":"myspace","content":"x","summary_for_chat":"done"}` +
		"\n```"

	if err := s.SubmitChat(context.Background(), "post it"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(s.Posts()) != 0 {
		t.Fatal("unknown platform must not create posts")
	}
	assistant := assistantMessages(s)
	if len(assistant) != 1 || assistant[0] != genai.chatReply {
		t.Fatalf("assistant messages = %+v", assistant)
	}
}
