package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const TimeOfDayLayout = "15:04:05"

// TimeOfDay is a wall-clock time such as a shift boundary. The driver hands
// TIME columns back as time.Time on year zero, so Scan keeps only the clock.
type TimeOfDay string

func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case time.Time:
		*t = TimeOfDay(v.Format(TimeOfDayLayout))
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
	return nil
}

func (t *TimeOfDay) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimeOfDayLayout, "15:04:05.999999", "15:04", time.RFC3339} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = TimeOfDay(parsed.Format(TimeOfDayLayout))
			return nil
		}
	}
	return fmt.Errorf("invalid time of day %q", s)
}

func (t TimeOfDay) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	return string(t), nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}
