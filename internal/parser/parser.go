// Package parser turns free-text streak messages into structured per-user,
// per-day results.
//
// A message looks like:
//
//	100 day streak
//	👑 1/6: @alice
//	2/6: @bob @charlie
//	X/6: @eve
//
// Parsing runs in two phases: first the day header is located, then the
// remainder is scanned for score segments. A segment starts with an optional
// crown marker and a score token ("1".."6" or "X") followed by "/6:", and
// runs until the next segment or the end of the message.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"wordletracker/internal/models"
)

// Crown marks the day's winner(s) in the source message.
const Crown = "👑"

// ParseError indicates a message that could not be interpreted as a streak
// message. The import is rejected as a whole; nothing is written.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Msg
}

var dayHeaderPattern = regexp.MustCompile(`(\d+) day streak`)

// trailingPunctuation is stripped from the end of raw usernames only; inner
// punctuation is part of the name.
const trailingPunctuation = ",;.!?"

// Parse extracts the day number and all (username, score, winner) triples
// from a streak message. A message without a day header fails with a
// *ParseError. A message with a day header but no score lines yields an
// empty result list; the caller decides whether that is worth recording.
//
// The same username may appear under several score lines in a malformed
// message. Parse does not deduplicate; the store's overwrite-on-conflict
// semantics make the last occurrence win.
func Parse(text string) (*models.ParsedMessage, error) {
	m := dayHeaderPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, &ParseError{Msg: "no streak day found"}
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, &ParseError{Msg: "invalid streak day: " + m[1]}
	}

	msg := &models.ParsedMessage{Day: day, Results: []models.ParsedResult{}}
	for _, seg := range scanSegments(text) {
		for _, name := range splitMentions(seg.body) {
			msg.Results = append(msg.Results, models.ParsedResult{
				Username: name,
				Score:    seg.score,
				IsWinner: seg.crowned,
			})
		}
	}

	return msg, nil
}

// segment is one score line: a score token, its crown state, and the raw
// text between its "/6:" and the start of the next segment.
type segment struct {
	score   models.Score
	crowned bool
	body    string
}

// scanSegments walks the message once, emitting a segment per score line in
// encounter order.
func scanSegments(text string) []segment {
	starts := segmentStarts(text)

	segments := make([]segment, 0, len(starts))
	for i, start := range starts {
		bodyStart := start + len("X/6:")
		bodyEnd := len(text)
		if i+1 < len(starts) {
			bodyEnd = starts[i+1]
		}
		body := text[bodyStart:bodyEnd]
		// A crown belongs to the following segment, never to this body.
		if j := strings.Index(body, Crown); j >= 0 {
			body = body[:j]
		}

		segments = append(segments, segment{
			score:   models.Score(text[start : start+1]),
			crowned: crownPrecedes(text, start),
			body:    body,
		})
	}
	return segments
}

// segmentStarts returns the byte offset of every score token that begins a
// score line, i.e. every token immediately followed by "/6:".
func segmentStarts(text string) []int {
	var starts []int
	for i := 0; i+3 < len(text); i++ {
		if models.Score(text[i:i+1]).Valid() && text[i+1:i+4] == "/6:" {
			starts = append(starts, i)
		}
	}
	return starts
}

// crownPrecedes reports whether a crown marker sits directly before the
// score token at offset start, with only whitespace in between. A crown on
// its own line still marks the score line below it.
func crownPrecedes(text string, start int) bool {
	head := strings.TrimRight(text[:start], " \t\r\n")
	return strings.HasSuffix(head, Crown)
}

// splitMentions extracts the cleaned usernames from a segment body. Names
// are introduced by "@" and run until the next "@" or the end of the body.
func splitMentions(body string) []string {
	parts := strings.Split(body, "@")
	if len(parts) < 2 {
		return nil
	}

	names := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		name := cleanUsername(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// cleanUsername trims surrounding whitespace and strips any run of trailing
// punctuation. Leading and inner punctuation survive; usernames can be
// almost anything, including emoji.
func cleanUsername(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimRight(name, trailingPunctuation)
	return strings.TrimSpace(name)
}
