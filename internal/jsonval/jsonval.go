// Package jsonval provides JSON value types that tolerate the loose typing
// found in hand-written mod manifests and catalog responses.
package jsonval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/conn-castle/modsync/internal/messages"
)

var nullLiteral = []byte("null")

// String is a string that also accepts JSON numbers, booleans and null.
// Numbers and booleans keep their literal text ("priority": 1000 decodes to "1000").
type String string

// UnmarshalJSON implements json.Unmarshaler.
func (s *String) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		*s = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*s = String(v)
		return nil
	case '{', '[':
		return fmt.Errorf(messages.JSONValueNotScalarFmt, abbreviate(trimmed))
	default:
		*s = String(trimmed)
		return nil
	}
}

// String returns the plain string value.
func (s String) String() string {
	return string(s)
}

// timeLayouts lists the date formats seen in manifests and catalog responses, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time is a timestamp decoded from a string in one of several layouts or from unix seconds.
// Unrecognised values decode to the zero time rather than failing the whole document.
type Time struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		t.Time = time.Time{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		t.Time = ParseTime(raw)
		return nil
	case '{', '[':
		return fmt.Errorf(messages.JSONValueNotScalarFmt, abbreviate(trimmed))
	default:
		t.Time = parseUnix(string(trimmed))
		return nil
	}
}

// MarshalJSON writes RFC 3339 for set times and null for the zero time.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return nullLiteral, nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// ParseTime parses raw with the known layouts, falling back to unix seconds.
// It returns the zero time when nothing matches.
func ParseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return parseUnix(raw)
}

func parseUnix(raw string) time.Time {
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC()
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Unix(int64(secs), 0).UTC()
	}
	return time.Time{}
}

func abbreviate(data []byte) string {
	const limit = 32
	if len(data) <= limit {
		return string(data)
	}
	return string(data[:limit]) + "..."
}
