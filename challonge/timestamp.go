package challonge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// TimestampLayout is the fixed-offset format Challonge uses on the wire,
// e.g. 2015-01-19T16:57:17.000-05:00.
const TimestampLayout = "2006-01-02T15:04:05.000-07:00"

// NullTime is a timestamp that may be absent. Challonge sometimes sends the
// string "null" instead of a JSON null; both decode to an invalid NullTime.
type NullTime struct {
	Time  time.Time
	Valid bool
}

func NewNullTime(t time.Time) NullTime {
	return NullTime{Time: t, Valid: true}
}

// ParseTimestamp decodes the wire format. "null" and "" yield the absent
// value without error.
func ParseTimestamp(s string) (NullTime, error) {
	if s == "" || s == "null" {
		return NullTime{}, nil
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		// the API is not consistent about fractional seconds
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return NullTime{}, fmt.Errorf("parse timestamp %q: %w", s, err)
		}
	}
	return NullTime{Time: t, Valid: true}, nil
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func (n NullTime) String() string {
	if !n.Valid {
		return "null"
	}
	return FormatTimestamp(n.Time)
}

func (n NullTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(FormatTimestamp(n.Time))
}

func (n *NullTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*n = NullTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Float is a decimal the API sends either as a JSON string ("1.0") or a
// number. It is always written back as a string.
type Float float64

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

func (f Float) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	raw := data
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		raw = []byte(s)
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("parse float %s: %w", data, err)
	}
	*f = Float(v)
	return nil
}

// NullInt is an integer that may arrive as a number, a numeric string, an
// empty string or null. The last two are absent.
type NullInt struct {
	Int   int
	Valid bool
}

func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n.Int)), nil
}

func (n *NullInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*n = NullInt{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = NullInt{}
			return nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("parse int %s: %w", data, err)
	}
	*n = NullInt{Int: v, Valid: true}
	return nil
}
