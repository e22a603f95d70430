package workspace

import (
	"errors"
	"testing"
)

func TestExtractFencedBlock(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			name: "bare fence",
			raw:  "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
			ok:   true,
		},
		{
			name: "json language tag",
			raw:  "Sure!\n```json\n{\"a\":1}\n```\nDone.",
			want: `{"a":1}`,
			ok:   true,
		},
		{
			name: "unclosed fence",
			raw:  "```json\n{\"a\":1}",
			ok:   false,
		},
		{
			name: "no fence at all",
			raw:  "just words",
			ok:   false,
		},
		{
			name: "first line is payload not a tag",
			raw:  "```\n[1, 2]\n```",
			want: "[1, 2]",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractFencedBlock(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("block = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseReplyAction(t *testing.T) {
	raw := "```json\n" +
		`{"action":"create_post","platform":"twitter","content":"☕","summary_for_chat":"Created a tweet."}` +
		"\n```"

	parsed := ParseReply(raw)
	if parsed.Kind != ReplyAction {
		t.Fatalf("kind = %v, want action", parsed.Kind)
	}
	if parsed.Action.Platform != "twitter" || parsed.Action.Content != "☕" {
		t.Fatalf("action = %+v", parsed.Action)
	}
	if parsed.Action.SummaryForChat != "Created a tweet." {
		t.Fatalf("summary = %q", parsed.Action.SummaryForChat)
	}
}

func TestParseReplyFallsBackToPlainText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no fence", "Here are some ideas for your campaign."},
		{"malformed json", "```json\n{not valid\n```"},
		{"wrong action", "```json\n{\"action\":\"delete_post\"}\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseReply(tt.raw)
			if parsed.Kind != ReplyPlainText {
				t.Fatalf("kind = %v, want plain text", parsed.Kind)
			}
			// The raw reply is preserved verbatim, fences included.
			if parsed.Text != tt.raw {
				t.Fatalf("text = %q, want %q", parsed.Text, tt.raw)
			}
		})
	}
}

func TestParseActions(t *testing.T) {
	raw := "```json\n" +
		`[{"action":"create_post","platform":"facebook","content":"one"},` +
		`{"action":"create_post","platform":"facebook","content":"two"}]` +
		"\n```"

	actions, err := ParseActions(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(actions) != 2 || actions[0].Content != "one" || actions[1].Content != "two" {
		t.Fatalf("actions = %+v", actions)
	}
}

func TestParseActionsFailureModesAreDistinct(t *testing.T) {
	if _, err := ParseActions("no structured content here"); !errors.Is(err, ErrNoJSONBlock) {
		t.Fatalf("err = %v, want ErrNoJSONBlock", err)
	}
	if _, err := ParseActions("```json\n{\"action\":\"create_post\"}\n```"); !errors.Is(err, ErrNotArray) {
		t.Fatalf("err = %v, want ErrNotArray", err)
	}
}
