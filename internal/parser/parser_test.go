package parser

import (
	"errors"
	"testing"

	"wordletracker/internal/models"
)

func TestParseDayHeader(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantDay int
		wantErr bool
	}{
		{
			name:    "plain header",
			message: "100 day streak",
			wantDay: 100,
		},
		{
			name:    "header embedded in chatter",
			message: "wow we made it to a 37 day streak everyone!",
			wantDay: 37,
		},
		{
			name:    "no header",
			message: "3/6: @alice",
			wantErr: true,
		},
		{
			name:    "number without the phrase",
			message: "day 100 of our streak",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Parse(tt.message)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse() expected error, got day=%d", msg.Day)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("Parse() error type = %T, want *ParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if msg.Day != tt.wantDay {
				t.Errorf("Parse() day = %d, want %d", msg.Day, tt.wantDay)
			}
		})
	}
}

func TestParseFullMessage(t *testing.T) {
	message := "100 day streak\n" +
		"👑 1/6: @alice\n" +
		"2/6: @bob @charlie\n" +
		"3/6: @david\n" +
		"X/6: @eve"

	msg, err := Parse(message)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if msg.Day != 100 {
		t.Errorf("day = %d, want 100", msg.Day)
	}

	want := []models.ParsedResult{
		{Username: "alice", Score: "1", IsWinner: true},
		{Username: "bob", Score: "2", IsWinner: false},
		{Username: "charlie", Score: "2", IsWinner: false},
		{Username: "david", Score: "3", IsWinner: false},
		{Username: "eve", Score: "X", IsWinner: false},
	}

	if len(msg.Results) != len(want) {
		t.Fatalf("got %d results, want %d: %+v", len(msg.Results), len(want), msg.Results)
	}
	for i, w := range want {
		if msg.Results[i] != w {
			t.Errorf("result %d = %+v, want %+v", i, msg.Results[i], w)
		}
	}
	if msg.Results[4].Score.Numeric() != 7 {
		t.Errorf("X numeric = %d, want 7", msg.Results[4].Score.Numeric())
	}
}

func TestParseIsDeterministic(t *testing.T) {
	message := "55 day streak 👑 2/6: @zoe @amy 4/6: @bea"

	first, err := Parse(message)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	second, err := Parse(message)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if len(first.Results) != len(second.Results) || first.Day != second.Day {
		t.Fatalf("two parses disagree: %+v vs %+v", first, second)
	}
	for i := range first.Results {
		if first.Results[i] != second.Results[i] {
			t.Errorf("result %d differs between parses", i)
		}
	}
	// Order must match first appearance in the text.
	order := []string{"zoe", "amy", "bea"}
	for i, name := range order {
		if first.Results[i].Username != name {
			t.Errorf("result %d = %q, want %q", i, first.Results[i].Username, name)
		}
	}
}

func TestParseSegments(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []models.ParsedResult
	}{
		{
			name:    "no score lines yields empty results",
			message: "12 day streak but nobody posted scores",
			want:    []models.ParsedResult{},
		},
		{
			name:    "trailing punctuation stripped",
			message: "5 day streak 3/6: @sam!!, @max.",
			want: []models.ParsedResult{
				{Username: "sam", Score: "3"},
				{Username: "max", Score: "3"},
			},
		},
		{
			name:    "unicode names survive",
			message: "5 day streak 2/6: @née 🌟 @θεό",
			want: []models.ParsedResult{
				{Username: "née 🌟", Score: "2"},
				{Username: "θεό", Score: "2"},
			},
		},
		{
			name:    "crown only marks its own segment",
			message: "9 day streak 👑 1/6: @winner 6/6: @straggler",
			want: []models.ParsedResult{
				{Username: "winner", Score: "1", IsWinner: true},
				{Username: "straggler", Score: "6"},
			},
		},
		{
			name:    "crown on its own line above the score",
			message: "9 day streak\n👑\n1/6: @winner",
			want: []models.ParsedResult{
				{Username: "winner", Score: "1", IsWinner: true},
			},
		},
		{
			name:    "crown on a later segment",
			message: "9 day streak 4/6: @early 👑 2/6: @late",
			want: []models.ParsedResult{
				{Username: "early", Score: "4"},
				{Username: "late", Score: "2", IsWinner: true},
			},
		},
		{
			name:    "duplicate user across segments is kept twice",
			message: "9 day streak 2/6: @dupe 5/6: @dupe",
			want: []models.ParsedResult{
				{Username: "dupe", Score: "2"},
				{Username: "dupe", Score: "5"},
			},
		},
		{
			name:    "consecutive mentions without separators",
			message: "9 day streak 3/6: @one@two@three",
			want: []models.ParsedResult{
				{Username: "one", Score: "3"},
				{Username: "two", Score: "3"},
				{Username: "three", Score: "3"},
			},
		},
		{
			name:    "empty mention discarded",
			message: "9 day streak 3/6: @ @kept",
			want: []models.ParsedResult{
				{Username: "kept", Score: "3"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Parse(tt.message)
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if len(msg.Results) != len(tt.want) {
				t.Fatalf("got %d results, want %d: %+v", len(msg.Results), len(tt.want), msg.Results)
			}
			for i, w := range tt.want {
				if msg.Results[i] != w {
					t.Errorf("result %d = %+v, want %+v", i, msg.Results[i], w)
				}
			}
		})
	}
}

func TestCleanUsername(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  alice  ", "alice"},
		{"bob,;.!?", "bob"},
		{"carol?! ", "carol"},
		{"d.ave", "d.ave"},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanUsername(tt.raw); got != tt.want {
			t.Errorf("cleanUsername(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
