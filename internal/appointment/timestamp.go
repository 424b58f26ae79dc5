package appointment

import (
	"encoding/json"
	"time"
)

// timestampLayouts covers the shapes the backend has been seen emitting:
// full RFC 3339, naive datetimes without a zone, and date-only values.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is a lenient ISO-8601 instant. A value that fails to parse
// decodes to the zero time instead of rejecting the whole payload; zero
// timestamps sort before everything, never count as "today", and are
// skipped when picking the next upcoming appointment.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = Timestamp{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = Timestamp{Time: parsed}
			return nil
		}
	}
	*t = Timestamp{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// SameDay reports whether t falls on the given local calendar day.
func (t Timestamp) SameDay(day time.Time) bool {
	if t.IsZero() {
		return false
	}
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
