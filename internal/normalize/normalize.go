// Package normalize coerces untrusted model replies into the data shape an
// action expects. Decoding is shape-only; Inspect reports semantic drift
// separately so callers can decide how strict to be.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BerylCAtieno/content-studio/internal/models"
)

// SnippetLength bounds the diagnostic text attached to a FormatError.
const SnippetLength = 200

const emptySnippet = "<empty response>"

type Shape int

const (
	ShapeObject Shape = iota
	ShapeArray
)

func (s Shape) String() string {
	if s == ShapeArray {
		return "array"
	}
	return "object"
}

// ShapeFor returns the top-level JSON shape expected for action.
func ShapeFor(action models.Action) Shape {
	if action == models.ActionCaption {
		return ShapeObject
	}
	return ShapeArray
}

// FormatError means the model answered but the text is not the expected
// structure. Raw holds the start of the cleaned reply.
type FormatError struct {
	Err error
	Raw string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("failed to parse AI response: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

var errNoPayload = errors.New("response contained no data")

var fenceMarkers = []string{"```", "~~~"}

// StripFences removes markdown code-fence wrapping and surrounding
// whitespace. When prose surrounds a fenced block, the first block wins.
func StripFences(raw string) string {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "\ufeff"))

	for _, marker := range fenceMarkers {
		if strings.HasPrefix(s, marker) {
			return strings.TrimSpace(unfence(s, marker))
		}
	}

	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return trimClosingFence(s)
	}

	for _, marker := range fenceMarkers {
		if idx := strings.Index(s, marker); idx != -1 {
			return strings.TrimSpace(unfence(s[idx:], marker))
		}
	}

	return s
}

// trimClosingFence drops a dangling closing fence after a bare payload.
func trimClosingFence(s string) string {
	for _, marker := range fenceMarkers {
		if strings.HasSuffix(s, marker) {
			return strings.TrimSpace(strings.TrimRight(s, marker[:1]))
		}
	}
	return s
}

// unfence expects s to start with marker.
func unfence(s, marker string) string {
	body := strings.TrimLeft(s, marker[:1])
	body = dropLanguageTag(body)

	if end := closingFence(body, marker); end != -1 {
		body = body[:end]
	}
	return strings.Trim(body, " \t\r\n"+marker[:1])
}

// closingFence finds the end of a fenced block. A marker opening a line
// wins, since JSON strings cannot hold raw newlines; otherwise the last
// marker is used so markers inside string values survive.
func closingFence(body, marker string) int {
	for i := 0; i < len(body); {
		nl := strings.IndexByte(body[i:], '\n')
		if nl == -1 {
			break
		}
		line := body[i+nl+1:]
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), marker) {
			return i + nl + 1
		}
		i += nl + 1
	}
	return strings.LastIndex(body, marker)
}

// dropLanguageTag removes an info string such as "json" right after an
// opening fence.
func dropLanguageTag(s string) string {
	tagged := strings.TrimLeft(s, " \t")
	i := 0
	for i < len(tagged) {
		r, size := utf8.DecodeRuneInString(tagged[i:])
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '+') {
			break
		}
		i += size
	}
	if i == 0 {
		return s
	}
	rest := tagged[i:]
	if rest == "" || strings.ContainsRune("\r\n\t {[", rune(rest[0])) {
		return rest
	}
	return s
}

// Snippet truncates s to at most n runes.
func Snippet(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func diagnostic(cleaned, raw string) string {
	if cleaned != "" {
		return Snippet(cleaned, SnippetLength)
	}
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return Snippet(trimmed, SnippetLength)
	}
	return emptySnippet
}

// Decode strips fences from raw and unmarshals it into target, which must
// match shape. Every failure is a *FormatError.
func Decode(raw string, shape Shape, target any) error {
	cleaned := StripFences(raw)

	if cleaned == "" {
		return &FormatError{Err: errNoPayload, Raw: diagnostic(cleaned, raw)}
	}

	want := byte('{')
	if shape == ShapeArray {
		want = '['
	}
	if cleaned[0] != want {
		return &FormatError{
			Err: fmt.Errorf("expected a JSON %s", shape),
			Raw: diagnostic(cleaned, raw),
		}
	}

	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return &FormatError{Err: err, Raw: diagnostic(cleaned, raw)}
	}
	return nil
}

// Normalize decodes raw into the typed result for action.
func Normalize(raw string, action models.Action) (any, error) {
	shape := ShapeFor(action)

	switch action {
	case models.ActionCaption:
		var out models.CaptionResult
		if err := Decode(raw, shape, &out); err != nil {
			return nil, err
		}
		if out.Hashtags == nil {
			out.Hashtags = []string{}
		}
		return out, nil
	case models.ActionHashtags:
		out := []string{}
		if err := Decode(raw, shape, &out); err != nil {
			return nil, err
		}
		return out, nil
	case models.ActionIdeas:
		out := []models.ContentIdea{}
		if err := Decode(raw, shape, &out); err != nil {
			return nil, err
		}
		return out, nil
	case models.ActionCalendar:
		out := []models.CalendarEntry{}
		if err := Decode(raw, shape, &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("no result shape for action %q", action)
	}
}
